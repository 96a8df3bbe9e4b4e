// Package auth is the identity provider: account signup, JWT issuance and
// refresh. It mints the principal ids that the rest of the system trusts.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"flexwage/apperr"
	"flexwage/globals"
	"flexwage/middleware"
	"flexwage/models"
	"flexwage/rdx"
	"flexwage/store"
	"flexwage/utils"
)

const (
	tokenTTL        = 72 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func refreshKey(token string) string { return "refresh:" + token }

// Register creates an account with a fresh principal id and a bcrypt-hashed
// password. Duplicate usernames are a conflict.
func (s *Service) Register(ctx context.Context, username, email, password string) (models.Account, error) {
	if _, err := s.store.Accounts.Get(ctx, username); err == nil {
		return models.Account{}, fmt.Errorf("username already taken: %w", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}

	acct := models.Account{
		PrincipalID:  "p" + utils.GenerateRandomString(12),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{"user"},
		CreatedAt:    time.Now(),
	}
	if err := s.store.Accounts.Put(ctx, username, acct); err != nil {
		return models.Account{}, err
	}
	return acct, nil
}

// Login verifies the password and returns a signed access token plus an opaque
// refresh token held in Redis.
func (s *Service) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	acct, err := s.store.Accounts.Get(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	accessToken, err = s.issueToken(acct)
	if err != nil {
		return "", "", err
	}

	refreshToken = utils.GetUUID()
	if err := rdx.RdxSetWithTTL(refreshKey(refreshToken), acct.Username, refreshTokenTTL); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error) {
	username, err := rdx.RdxGet(refreshKey(refreshToken))
	if err != nil || username == "" {
		return "", "", fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthorized)
	}
	acct, err := s.store.Accounts.Get(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthorized)
	}

	if _, err := rdx.RdxDel(refreshKey(refreshToken)); err != nil {
		return "", "", err
	}
	accessToken, err = s.issueToken(acct)
	if err != nil {
		return "", "", err
	}
	newRefreshToken = utils.GetUUID()
	if err := rdx.RdxSetWithTTL(refreshKey(newRefreshToken), acct.Username, refreshTokenTTL); err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

// Logout revokes the refresh token. Access tokens expire on their own.
func (s *Service) Logout(_ context.Context, refreshToken string) error {
	_, err := rdx.RdxDel(refreshKey(refreshToken))
	return err
}

func (s *Service) issueToken(acct models.Account) (string, error) {
	claims := middleware.Claims{
		Username: acct.Username,
		UserID:   acct.PrincipalID,
		Role:     acct.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
