package out

import (
	"context"

	"questlog/internal/modules/session/domain"
)

// ActiveSessionStore persists the single active session so a countdown
// survives process restarts. LoadActive returns
// apperrors.ErrNoActiveSession when nothing is running.
type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}
