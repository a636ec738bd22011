package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
)

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, cid, pid int64) (*model.Project, error)
	ListByCompany(ctx context.Context, cid int64, offset, limit int) ([]*model.Project, int, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, cid, pid int64) error
}

type ProjectRepository struct {
	DB *sqlx.DB
}

const projectColumns = `pid, cid, name, access_token, ad_account_id, config, auto, create_at, update_at`

// Create inserts p; config and auto are written through their driver.Valuer.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `
        INSERT INTO projects (cid, name, access_token, ad_account_id, config, auto)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING pid, create_at, update_at
    `
	return r.DB.QueryRowxContext(ctx, query, p.CID, p.Name, p.AccessToken, p.AdAccountID, p.Config, p.Auto).
		Scan(&p.PID, &p.CreateAt, &p.UpdateAt)
}

// GetByID only finds projects owned by cid.
func (r *ProjectRepository) GetByID(ctx context.Context, cid, pid int64) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE pid=$1 AND cid=$2`

	var p model.Project
	if err := r.DB.GetContext(ctx, &p, query, pid, cid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewProjectNotFound(pid)
		}
		return nil, err
	}
	return &p, nil
}

// ListByCompany returns one page of the company's projects, newest first, and
// the company's total project count.
func (r *ProjectRepository) ListByCompany(ctx context.Context, cid int64, offset, limit int) ([]*model.Project, int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects WHERE cid=$1`, cid); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE cid=$1 ORDER BY pid DESC LIMIT $2 OFFSET $3`

	projects := []*model.Project{}
	if err := r.DB.SelectContext(ctx, &projects, query, cid, limit, offset); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update replaces name, config and auto as a whole.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET name=$1, config=$2, auto=$3, update_at=NOW()
        WHERE pid=$4 AND cid=$5
        RETURNING create_at, update_at
    `
	err := r.DB.QueryRowxContext(ctx, query, p.Name, p.Config, p.Auto, p.PID, p.CID).Scan(&p.CreateAt, &p.UpdateAt)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewProjectNotFound(p.PID)
	}
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, cid, pid int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE pid=$1 AND cid=$2`, pid, cid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewProjectNotFound(pid)
	}
	return nil
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)
