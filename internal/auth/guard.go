package auth

import (
	"context"

	"github.com/nicuhealth/central-station/internal/models"
)

// RequireRole ensures the context carries a session whose role is in the
// allowed set. A missing session yields ErrNotAuthenticated; a present
// session with a disallowed role yields ErrForbidden, so callers can
// always tell "log in" apart from "you lack permission".
func RequireRole(ctx context.Context, allowed ...models.Role) (*Session, error) {
	session, err := RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Role.In(allowed) {
		return nil, ErrForbidden
	}
	return session, nil
}
