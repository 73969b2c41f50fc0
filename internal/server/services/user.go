// Package services contains server-side business logic. This file implements
// UserService, which handles login, logout, access token verification and the
// rotation of server-stored refresh tokens, plus the user administration used
// by the admin CLI.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"github.com/dmitrijs2005/crmauth/internal/dbx"
	"github.com/dmitrijs2005/crmauth/internal/logging"
	"github.com/dmitrijs2005/crmauth/internal/server/auth"
	"github.com/dmitrijs2005/crmauth/internal/server/config"
	"github.com/dmitrijs2005/crmauth/internal/server/models"
	"github.com/dmitrijs2005/crmauth/internal/server/repositories/repomanager"
)

// refreshTokenSize is the number of random bytes in a refresh token; the
// token itself is their hex encoding.
const refreshTokenSize = 40

// Session is the result of a successful login or refresh.
type Session struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	// ExpiresIn is the access token lifetime in whole seconds.
	ExpiresIn int64
	User      *models.User
}

// UserService provides authentication-related operations:
// - Login: verify credentials and start a session
// - Refresh: rotate a refresh token and mint a new access token
// - Logout: revoke a refresh token
// - Authenticate: verify an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	issuer      *auth.TokenIssuer
	log         logging.Logger
	now         func() time.Time

	accessTokenValidityDuration    time.Duration
	refreshTokenValidityDuration   time.Duration
	rememberMeValidityDuration     time.Duration
	refreshRenewalValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:                             db,
		repomanager:                    m,
		hasher:                         auth.NewPasswordHasher(cfg.BcryptCost),
		issuer:                         auth.NewTokenIssuer([]byte(cfg.SecretKey)),
		log:                            log.With("module", "user_service"),
		now:                            time.Now,
		accessTokenValidityDuration:    cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration:   cfg.RefreshTokenValidityDuration,
		rememberMeValidityDuration:     cfg.RememberMeValidityDuration,
		refreshRenewalValidityDuration: cfg.RefreshRenewalValidityDuration,
	}
}

// Login checks email and password and, on success, replaces every refresh
// token the user holds with a new one. Unknown email and wrong password both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string, rememberMe bool) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error searching user: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	ttl := s.refreshTokenValidityDuration
	if rememberMe {
		ttl = s.rememberMeValidityDuration
	}

	refresh, err := s.issueRefreshToken(ctx, user.ID, ttl)
	if err != nil {
		return nil, err
	}
	return s.newSession(user, refresh.Token, refresh.Expires)
}

// Refresh exchanges a refresh token for a new access token and a new refresh
// token value. The stored record is swapped atomically, so of two concurrent
// redemptions of the same value only one succeeds.
//
// An expired token is deleted before common.ErrRefreshTokenExpired is
// returned; a token that does not exist (or was just rotated by someone
// else) yields common.ErrUnknownRefreshToken.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	repo := s.repomanager.RefreshTokens(s.db)
	now := s.now()

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownRefreshToken
		}
		return nil, fmt.Errorf("%w: error searching refresh token: %v", common.ErrorInternal, err)
	}

	if token.Expired(now) {
		if err := repo.Delete(ctx, refreshToken); err != nil {
			s.log.Error(ctx, "failed to delete expired refresh token", "user_id", token.UserID, "error", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownRefreshToken
		}
		return nil, fmt.Errorf("%w: error searching user: %v", common.ErrorInternal, err)
	}

	newToken, err := common.MakeRandHexString(refreshTokenSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	expires := now.Add(s.refreshRenewalValidityDuration)

	if err := repo.Rotate(ctx, refreshToken, newToken, expires, now); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "refresh token rotated concurrently", "user_id", user.ID)
			return nil, common.ErrUnknownRefreshToken
		}
		return nil, fmt.Errorf("%w: error rotating refresh token: %v", common.ErrorInternal, err)
	}

	return s.newSession(user, newToken, expires)
}

// Logout revokes refreshToken. An empty or unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("%w: error deleting refresh token: %v", common.ErrorInternal, err)
	}
	return nil
}

// Authenticate verifies an access token and returns its claims. Every
// failure is common.ErrInvalidToken.
func (s *UserService) Authenticate(accessToken string) (*auth.Claims, error) {
	return s.issuer.Verify(accessToken)
}

// CreateUser stores a new user with a bcrypt hash of password. Role defaults
// to common.RoleViewer.
func (s *UserService) CreateUser(ctx context.Context, email, name, role, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = common.RoleViewer
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{Email: email, Name: name, Role: role, PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// ChangePassword sets a new password for the user with the given email and
// revokes all of that user's refresh tokens. It returns how many were revoked.
func (s *UserService) ChangePassword(ctx context.Context, email, password string) (int64, error) {
	if err := validatePassword(password); err != nil {
		return 0, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	var revoked int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		n, err := s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("error revoking refresh tokens: %w", err)
		}
		revoked = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revoked, nil
}

// PurgeExpiredTokens deletes every refresh token that has expired and
// returns the number removed.
func (s *UserService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging refresh tokens: %w", err)
	}
	return n, nil
}

// --- helpers below ---

// validatePassword rejects passwords bcrypt cannot hash: empty ones and
// ones longer than auth.MaxPasswordBytes.
func validatePassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	case len(password) > auth.MaxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}
	return nil
}

// issueRefreshToken deletes all refresh tokens of userID and stores a new one,
// in a single transaction. The unique user_id constraint behind Create keeps
// concurrent logins of one user from leaving more than one token.
func (s *UserService) issueRefreshToken(ctx context.Context, userID string, ttl time.Duration) (*models.RefreshToken, error) {
	value, err := common.MakeRandHexString(refreshTokenSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	meta := ClientMetaFrom(ctx)
	token := &models.RefreshToken{
		UserID:    userID,
		Token:     value,
		Expires:   s.now().Add(ttl),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.RefreshTokens(tx)
		if _, err := repo.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting refresh tokens: %v", err)
		}
		if err := repo.Create(ctx, token); err != nil {
			return fmt.Errorf("error creating refresh token: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

func (s *UserService) newSession(user *models.User, refreshToken string, refreshExpires time.Time) (*Session, error) {
	access, accessExpires, err := s.issuer.Issue(user.ID, user.Role, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: error signing access token: %v", common.ErrorInternal, err)
	}
	return &Session{
		AccessToken:      access,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpires,
		RefreshExpiresAt: refreshExpires,
		ExpiresIn:        int64(s.accessTokenValidityDuration / time.Second),
		User:             user,
	}, nil
}
