package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"github.com/dmitrijs2005/crmauth/internal/server/auth"
	"github.com/dmitrijs2005/crmauth/internal/server/models"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
)

const testSecret = "test-secret"

// fakeSessions implements SessionService with a single known user and a
// single live refresh token.
type fakeSessions struct {
	mu sync.Mutex

	issuer   *auth.TokenIssuer
	user     *models.User
	password string
	refresh  string
	expired  map[string]bool

	loginErr   error
	refreshErr error
	logoutErr  error
	panicOn    string

	lastMeta   services.ClientMeta
	loggedOut  []string
	rememberMe bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		issuer:   auth.NewTokenIssuer([]byte(testSecret)),
		user:     &models.User{ID: "u1", Email: "a@b.com", Name: "Alice", Role: common.RoleAdmin},
		password: "correct",
		refresh:  "live-refresh",
		expired:  map[string]bool{"stale-refresh": true},
	}
}

func (f *fakeSessions) session(refresh string, refreshTTL time.Duration) (*services.Session, error) {
	tok, exp, err := f.issuer.Issue(f.user.ID, f.user.Role, time.Hour)
	if err != nil {
		return nil, err
	}
	return &services.Session{
		AccessToken:      tok,
		RefreshToken:     refresh,
		AccessExpiresAt:  exp,
		RefreshExpiresAt: time.Now().Add(refreshTTL),
		ExpiresIn:        3600,
		User:             f.user,
	}, nil
}

func (f *fakeSessions) Login(ctx context.Context, email, password string, rememberMe bool) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn == "login" {
		panic("kaboom")
	}
	f.lastMeta = services.ClientMetaFrom(ctx)
	f.rememberMe = rememberMe
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if email != f.user.Email || password != f.password {
		return nil, common.ErrorUnauthorized
	}
	f.refresh = "login-refresh"
	return f.session(f.refresh, 7*24*time.Hour)
}

func (f *fakeSessions) Refresh(ctx context.Context, token string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if f.expired[token] {
		delete(f.expired, token)
		return nil, common.ErrRefreshTokenExpired
	}
	if token != f.refresh {
		return nil, common.ErrUnknownRefreshToken
	}
	f.refresh = "rotated-refresh"
	return f.session(f.refresh, 30*24*time.Hour)
}

func (f *fakeSessions) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = append(f.loggedOut, token)
	if f.logoutErr != nil {
		return f.logoutErr
	}
	if token == f.refresh {
		f.refresh = ""
	}
	return nil
}

func (f *fakeSessions) Authenticate(token string) (*auth.Claims, error) {
	return f.issuer.Verify(token)
}
