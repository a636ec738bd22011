package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
)

const uniqueViolation = "23505"

// UserRepositoryInterface defines methods used by the user and auth services
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *model.UserAccount) error
	GetByID(ctx context.Context, uid int64) (*model.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (*model.UserAccount, error)
}

type UserRepository struct {
	DB *sqlx.DB
}

const userColumns = `uid, cid, username, email, password, role, status, create_at, update_at`

// Create inserts u. A taken email is reported as a ConflictError.
func (r *UserRepository) Create(ctx context.Context, u *model.UserAccount) error {
	if u.Role == "" {
		u.Role = model.RoleMember
	}
	if u.Status == "" {
		u.Status = model.UserStatusActive
	}
	query := `
        INSERT INTO user_accounts (cid, username, email, password, role, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING uid, create_at, update_at
    `
	err := r.DB.QueryRowxContext(ctx, query, u.CID, u.Username, u.Email, u.Password, u.Role, u.Status).
		Scan(&u.UID, &u.CreateAt, &u.UpdateAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.NewConflict("email %s is already registered", u.Email)
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, uid int64) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM user_accounts WHERE uid=$1`, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewUserNotFound(uid)
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns nil without error when no account uses email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM user_accounts WHERE email=$1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}
	return &u, nil
}

// SetRole is used by the seeder; the HTTP surface has no role management.
func (r *UserRepository) SetRole(ctx context.Context, uid int64, role string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE user_accounts SET role=$1, update_at=NOW() WHERE uid=$2`, role, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewUserNotFound(uid)
	}
	return nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
