// Package service implements credential issuance and access control: bcrypt
// password verification, signed bearer tokens, and the bootstrap sequence
// that creates the first administrative account.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/store"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers every verification failure (bad signature,
	// expired, malformed, missing claims) with a single outcome.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAlreadyInitialized is returned when open registration is attempted
	// after the first admin account exists.
	ErrAlreadyInitialized = errors.New("system already initialized")

	// ErrUsernameTaken is returned by privileged account creation when the
	// username is already in use.
	ErrUsernameTaken = errors.New("username already exists")
)

// Claims is the signed claim set carried by an access token.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService owns the signing secret and token lifetime, both fixed at
// construction, and performs all account and token operations against the
// store.
type AuthService struct {
	store    *store.Store
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService. The secret and TTL are immutable
// for the life of the process.
func NewAuthService(st *store.Store, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:    st,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// TokenTTL returns the configured token lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// IssueToken creates a signed HS256 token carrying the username and role.
func (s *AuthService) IssueToken(username string, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "fanfei",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken checks a token's signature, expiry, and required claims.
// Every failure collapses into ErrInvalidToken; callers learn nothing about
// which check failed.
func (s *AuthService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login verifies a credential pair and mints an access token. The unknown-
// username and wrong-password paths are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Admin, string, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("look up account: %w", err)
	}

	if !CheckPassword(password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(admin.Username, admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return admin, token, nil
}

// Bootstrap creates the very first admin account with role super_admin.
// It is only valid while no account exists. The count check is a fast path;
// the store's conditional insert is the authoritative gate, so two
// concurrent bootstrap requests cannot both succeed even if both observed
// an empty table.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) (*model.Admin, error) {
	count, err := s.store.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	if err := s.store.CreateFirstAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race: someone else created the first account
			// between our count and our insert.
			return nil, ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("create first admin: %w", err)
	}
	return admin, nil
}

// CreateAdmin creates an additional account. The caller is responsible for
// authorization; this method only enforces username uniqueness.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string, role model.Role) (*model.Admin, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(role))
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// ListAdmins returns all accounts, newest first. Password hashes stay out
// of responses via the model's json tags.
func (s *AuthService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.store.ListAdmins(ctx)
}
