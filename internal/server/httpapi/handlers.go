package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/common"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &LoginRequest{}
	if err := decodeAndValidate(w, r, req); err != nil {
		s.badRequest(w, err)
		return
	}

	sess, err := s.users.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login rejected")
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.logger.Info(ctx, "Logged in", "user_id", sess.User.ID, "remember_me", req.RememberMe)
	s.setSessionCookies(w, sess, time.Now())
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &RefreshRequest{}
	if err := decodeAndValidate(w, r, req); err != nil {
		s.badRequest(w, err)
		return
	}

	sess, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrUnknownRefreshToken) || errors.Is(err, common.ErrRefreshTokenExpired) {
			s.logger.Info(ctx, "Refresh rejected", "reason", err.Error())
			writeMessage(w, http.StatusUnauthorized, msgInvalidRefreshToken)
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.setSessionCookies(w, sess, time.Now())
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// logout always answers 200. A refresh token presented in the body, the
// x-refresh-token header or the refreshToken cookie is revoked first.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &LogoutRequest{}
	if err := decodeAndValidate(w, r, req); err != nil {
		req.fill(r)
	}

	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		s.logger.Error(ctx, "Failed to revoke refresh token", "error", err)
	}

	s.clearSessionCookies(w)
	writeMessage(w, http.StatusOK, msgLoggedOut)
}

// protected accepts the access token from the token cookie or, failing that,
// a Bearer Authorization header.
func (s *Server) protected(w http.ResponseWriter, r *http.Request) {
	token := accessTokenFrom(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	claims, err := s.users.Authenticate(token)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Hello, user %s", claims.UserID))
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeMessage(w, http.StatusBadRequest, verr.msg)
		return
	}
	writeMessage(w, http.StatusBadRequest, msgInvalidBody)
}

// internalError logs err and answers with the generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	writeMessage(w, http.StatusInternalServerError, msgInternal)
}

func accessTokenFrom(r *http.Request) string {
	if c, err := r.Cookie(common.AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
