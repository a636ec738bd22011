// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/adreport-backend/internal/auth"
	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/validation"
)

type AuthService struct {
	UserRepo repository.UserRepositoryInterface
	Tokens   *auth.TokenManager
	Revoker  auth.Revoker
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type LoginResult struct {
	User      *model.UserAccount
	Token     string
	ExpiresAt time.Time
}

// Login checks the credentials and issues a token. Unknown emails, wrong
// passwords and disabled accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Status != model.UserStatusActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	raw, tok, err := s.Tokens.Issue(auth.Principal{
		UID:      u.UID,
		CID:      u.CID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: raw, ExpiresAt: tok.ExpiresAt}, nil
}

// Authenticate resolves a bearer token that has not been logged out and whose
// account is still active.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (auth.Token, error) {
	tok, err := s.Tokens.Parse(raw)
	if err != nil {
		return auth.Token{}, err
	}
	revoked, err := s.Revoker.IsRevoked(ctx, tok.ID)
	if err != nil {
		return auth.Token{}, err
	}
	if revoked {
		return auth.Token{}, appErrors.NewUnauthorized("token revoked")
	}

	u, err := s.UserRepo.GetByID(ctx, tok.Principal.UID)
	var notFound *appErrors.NotFoundError
	if errors.As(err, &notFound) {
		return auth.Token{}, appErrors.NewUnauthorized("account disabled")
	}
	if err != nil {
		return auth.Token{}, err
	}
	if u.Status != model.UserStatusActive {
		return auth.Token{}, appErrors.NewUnauthorized("account disabled")
	}
	return tok, nil
}

func (s *AuthService) Logout(ctx context.Context, tok auth.Token) error {
	return s.Revoker.Revoke(ctx, tok.ID, tok.ExpiresAt)
}
