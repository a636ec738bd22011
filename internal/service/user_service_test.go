package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/adreport-backend/internal/auth"
	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/service"
)

func newUserFixtures(t *testing.T) (*service.UserService, *service.AuthService, *MockUserRepo) {
	t.Helper()
	companies := &MockCompanyRepo{}
	require.NoError(t, companies.Create(context.Background(), &model.Company{Name: "Acme Corp"}))

	users := &MockUserRepo{}
	userSvc := &service.UserService{UserRepo: users, CompanyRepo: companies, BcryptCost: bcrypt.MinCost}
	authSvc := &service.AuthService{
		UserRepo: users,
		Tokens:   auth.NewTokenManager("secret", time.Hour),
		Revoker:  auth.NewMemoryRevoker(),
	}
	return userSvc, authSvc, users
}

var janeInput = service.RegisterUserInput{
	CID:      1000000,
	Email:    "jane@example.com",
	Username: "janedoe",
	Password: "password123",
}

func TestRegisterCompany(t *testing.T) {
	svc := &service.CompanyService{CompanyRepo: &MockCompanyRepo{}}

	c, err := svc.Register(context.Background(), service.RegisterCompanyInput{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), c.CID)
	assert.Equal(t, model.CompanyStatusActive, c.Status)

	_, err = svc.Register(context.Background(), service.RegisterCompanyInput{Name: "Acme"})
	var verr *appErrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be at least 5 characters long", verr.Fields[0].Message)
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc, _, users := newUserFixtures(t)

	u, err := svc.Register(context.Background(), janeInput)
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), u.UID)
	assert.Equal(t, model.RoleMember, u.Role)

	stored := users.users[0]
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _, _ := newUserFixtures(t)

	_, err := svc.Register(context.Background(), service.RegisterUserInput{CID: 999, Email: "x", Username: "abc", Password: "12345"})
	var verr *appErrors.ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"cid", "email", "username", "password"} {
		assert.True(t, verr.Has(field), field)
	}
}

func TestRegisterUserUnknownCompany(t *testing.T) {
	svc, _, _ := newUserFixtures(t)

	in := janeInput
	in.CID = 1000042
	_, err := svc.Register(context.Background(), in)
	var nf *appErrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "company", nf.Resource)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixtures(t)

	_, err := svc.Register(context.Background(), janeInput)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), janeInput)
	var conflict *appErrors.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestLoginAndLogout(t *testing.T) {
	userSvc, authSvc, _ := newUserFixtures(t)
	_, err := userSvc.Register(context.Background(), janeInput)
	require.NoError(t, err)

	res, err := authSvc.Login(context.Background(), service.LoginInput{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", res.User.Username)

	tok, err := authSvc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), tok.Principal.CID)

	require.NoError(t, authSvc.Logout(context.Background(), tok))

	_, err = authSvc.Authenticate(context.Background(), res.Token)
	assert.EqualError(t, err, "unauthorized: token revoked")
}

func TestLoginInvalidCredentials(t *testing.T) {
	userSvc, authSvc, users := newUserFixtures(t)
	_, err := userSvc.Register(context.Background(), janeInput)
	require.NoError(t, err)

	_, err = authSvc.Login(context.Background(), service.LoginInput{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = authSvc.Login(context.Background(), service.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	users.users[0].Status = model.UserStatusDisabled
	_, err = authSvc.Login(context.Background(), service.LoginInput{Email: "jane@example.com", Password: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthenticateRejectsDisabledAccount(t *testing.T) {
	userSvc, authSvc, users := newUserFixtures(t)
	_, err := userSvc.Register(context.Background(), janeInput)
	require.NoError(t, err)

	res, err := authSvc.Login(context.Background(), service.LoginInput{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	users.users[0].Status = model.UserStatusDisabled
	_, err = authSvc.Authenticate(context.Background(), res.Token)
	assert.EqualError(t, err, "unauthorized: account disabled")

	users.users = nil
	_, err = authSvc.Authenticate(context.Background(), res.Token)
	assert.EqualError(t, err, "unauthorized: account disabled")
}
