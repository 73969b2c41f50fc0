// Package refreshtokens declares the server-side repository contract for
// refresh tokens and its PostgreSQL implementation.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/server/models"
)

// Repository defines operations for issuing, looking up, rotating and
// revoking refresh tokens.
type Repository interface {
	// Create stores token and fills its ID and CreatedAt. A user holds at
	// most one token: an existing one for token.UserID is replaced.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find looks a token up by exact string match. Returns
	// common.ErrorNotFound when absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Rotate replaces oldToken with newToken and a new expiry, provided
	// oldToken still exists and has not expired at now. It returns
	// common.ErrorNotFound when the condition no longer holds, which is how
	// a concurrent redeemer that lost the race finds out.
	Rotate(ctx context.Context, oldToken, newToken string, expires, now time.Time) error

	// Delete removes a token. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUser removes every token of userID and returns how many.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpired removes tokens whose expiry is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
