package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/crmauth/internal/common"
)

const maxBodyBytes = 1 << 20

// validationError carries the client-facing message of a rejected request.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return common.ErrorValidation }

type validator interface {
	Validate() error
}

// filler is implemented by requests that may take fields from headers or
// cookies when the body leaves them empty.
type filler interface {
	fill(r *http.Request)
}

// decodeAndValidate decodes the JSON body into req and validates it. An empty
// body decodes as an empty object. Every failure is a *validationError.
func decodeAndValidate[T validator](w http.ResponseWriter, r *http.Request, req T) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return &validationError{msg: msgInvalidBody}
	}
	if f, ok := any(req).(filler); ok {
		f.fill(r)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	return nil
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (req *LoginRequest) Validate() error {
	if req.Email == "" || req.Password == "" {
		return &validationError{msg: msgLoginFieldsRequired}
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (req *RefreshRequest) fill(r *http.Request) {
	if req.RefreshToken == "" {
		req.RefreshToken = presentedRefreshToken(r)
	}
}

func (req *RefreshRequest) Validate() error {
	if req.RefreshToken == "" {
		return &validationError{msg: msgRefreshTokenRequired}
	}
	return nil
}

// LogoutRequest has no required fields; logout succeeds without a token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (req *LogoutRequest) fill(r *http.Request) {
	if req.RefreshToken == "" {
		req.RefreshToken = presentedRefreshToken(r)
	}
}

func (req *LogoutRequest) Validate() error { return nil }

// presentedRefreshToken looks for a refresh token outside the body: the
// x-refresh-token header first, then the refreshToken cookie.
func presentedRefreshToken(r *http.Request) string {
	if v := r.Header.Get(common.RefreshTokenHeaderName); v != "" {
		return v
	}
	if c, err := r.Cookie(common.RefreshTokenCookieName); err == nil {
		return c.Value
	}
	return ""
}
