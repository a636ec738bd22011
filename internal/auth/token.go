package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
)

// Principal is the authenticated caller. Tenant scope comes from CID.
type Principal struct {
	UID      int64  `json:"uid"`
	CID      int64  `json:"cid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Token is a verified token: its id is what logout revokes.
type Token struct {
	ID        string
	Principal Principal
	ExpiresAt time.Time
}

type claims struct {
	CID      int64  `json:"cid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p valid for the manager's TTL.
func (m *TokenManager) Issue(p Principal) (string, Token, error) {
	now := m.now()
	tok := Token{
		ID:        uuid.NewString(),
		Principal: p,
		ExpiresAt: now.Add(m.ttl),
	}
	c := claims{
		CID:      p.CID,
		Email:    p.Email,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tok.ID,
			Subject:   strconv.FormatInt(p.UID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(tok.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", Token{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, tok, nil
}

// Parse verifies signature and expiry. Every failure is an UnauthorizedError.
func (m *TokenManager) Parse(raw string) (Token, error) {
	var c claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Token{}, appErrors.NewUnauthorized("token expired")
		}
		return Token{}, appErrors.NewUnauthorized("invalid token")
	}

	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || c.ID == "" || c.ExpiresAt == nil {
		return Token{}, appErrors.NewUnauthorized("invalid token claims")
	}

	return Token{
		ID: c.ID,
		Principal: Principal{
			UID:      uid,
			CID:      c.CID,
			Email:    c.Email,
			Username: c.Username,
			Role:     c.Role,
		},
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
