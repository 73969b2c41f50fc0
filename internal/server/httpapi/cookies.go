package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
)

const refreshCookiePath = "/auth"

// setSessionCookies stores both tokens in HttpOnly cookies so browser clients
// can call /auth/protected and /auth/refresh without touching the values.
func (s *Server) setSessionCookies(w http.ResponseWriter, sess *services.Session, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    sess.AccessToken,
		Path:     "/",
		MaxAge:   maxAge(sess.AccessExpiresAt, now),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    sess.RefreshToken,
		Path:     refreshCookiePath,
		MaxAge:   maxAge(sess.RefreshExpiresAt, now),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies expires both cookies immediately.
func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	for _, c := range []struct{ name, path string }{
		{common.AccessTokenCookieName, "/"},
		{common.RefreshTokenCookieName, refreshCookiePath},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    "",
			Path:     c.path,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func maxAge(expires, now time.Time) int {
	secs := int(expires.Sub(now) / time.Second)
	if secs < 1 {
		return -1
	}
	return secs
}
