// Package auth holds the credential primitives of the session server:
// bcrypt password hashing and HS256 access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims: the standard ones plus the user id and
// role the front end needs without another round trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// TokenIssuer signs and verifies access tokens with a symmetric key.
// Tokens are not stored anywhere, so they cannot be revoked before expiry.
type TokenIssuer struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenIssuer(secretKey []byte) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, now: time.Now}
}

// Issue returns a token for userID/role valid for ttl, and its expiry.
func (i *TokenIssuer) Issue(userID, role string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Role:   role,
	})

	signed, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported
// as common.ErrInvalidToken; the cause is only available through the
// wrapped error for logging.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
