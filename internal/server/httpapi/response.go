package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/crmauth/internal/server/models"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
)

// Client-facing messages. Authentication failures are deliberately generic.
const (
	msgInvalidCredentials   = "Invalid email or password"
	msgInvalidRefreshToken  = "Invalid or expired refresh token"
	msgUnauthorized         = "Unauthorized"
	msgInternal             = "Internal server error"
	msgInvalidBody          = "Invalid request body"
	msgLoginFieldsRequired  = "Email and password are required"
	msgRefreshTokenRequired = "Refresh token is required"
	msgLoggedOut            = "Logged out successfully"
)

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func newSessionResponse(sess *services.Session) sessionResponse {
	return sessionResponse{
		User:         newUserResponse(sess.User),
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
