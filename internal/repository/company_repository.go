package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
)

type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *model.Company) error
	GetByID(ctx context.Context, cid int64) (*model.Company, error)
}

type CompanyRepository struct {
	DB *sqlx.DB
}

func (r *CompanyRepository) Create(ctx context.Context, c *model.Company) error {
	if c.Status == "" {
		c.Status = model.CompanyStatusActive
	}
	query := `
        INSERT INTO companies (name, status)
        VALUES ($1, $2)
        RETURNING cid, create_at, update_at
    `
	return r.DB.QueryRowxContext(ctx, query, c.Name, c.Status).Scan(&c.CID, &c.CreateAt, &c.UpdateAt)
}

func (r *CompanyRepository) GetByID(ctx context.Context, cid int64) (*model.Company, error) {
	var c model.Company
	err := r.DB.GetContext(ctx, &c, `SELECT cid, name, status, create_at, update_at FROM companies WHERE cid=$1`, cid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCompanyNotFound(cid)
		}
		return nil, err
	}
	return &c, nil
}

var _ CompanyRepositoryInterface = (*CompanyRepository)(nil)
