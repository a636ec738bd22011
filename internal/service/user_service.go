// internal/service/user_service.go
package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/validation"
)

type UserService struct {
	UserRepo    repository.UserRepositoryInterface
	CompanyRepo repository.CompanyRepositoryInterface
	BcryptCost  int
}

type RegisterUserInput struct {
	CID      int64  `json:"cid" validate:"gte=1000000"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"min=5,max=64"`
	Password string `json:"password" validate:"min=6,max=72"`
}

// Register creates a member account in an existing company.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*model.UserAccount, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.CompanyRepo.GetByID(ctx, in.CID); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewConflict("email %s is already registered", in.Email)
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.UserAccount{
		CID:      in.CID,
		Email:    in.Email,
		Username: in.Username,
		Password: string(hash),
		Role:     model.RoleMember,
		Status:   model.UserStatusActive,
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
