package interfaces

import (
	"context"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

//go:generate moq -out ../mock/session_repository_mock.go -pkg mock . SessionRepository

// SessionRepository persists server-side dashboard sessions.
type SessionRepository interface {
	// GetSession returns types.ErrNotFound for unknown or expired sessions.
	GetSession(ctx context.Context, id types.SessionID) (*model.Session, error)
	// PutSession stores sess when sess.Version equals the stored revision (0 for a new session) and
	// then increments sess.Version. A stale copy gets types.ErrConflict; a copy of a deleted session
	// gets types.ErrNotFound.
	PutSession(ctx context.Context, sess *model.Session) error
	DeleteSession(ctx context.Context, id types.SessionID) error
}
