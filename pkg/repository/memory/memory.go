package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.Session
}

// New creates a new in-memory session repository
func New() interfaces.SessionRepository {
	return &sessionRepository{
		sessions: make(map[types.SessionID]*model.Session),
	}
}

func (r *sessionRepository) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "session not found", goerr.V("id", id))
	}
	if sess.Expired(logging.CtxTime(ctx)) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, goerr.Wrap(types.ErrNotFound, "session expired", goerr.V("id", id))
	}

	return sess.Copy(), nil
}

func (r *sessionRepository) PutSession(ctx context.Context, sess *model.Session) error {
	if sess.ID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "session ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var stored int64
	if current, ok := r.sessions[sess.ID]; ok {
		stored = current.Version
	} else if sess.Version != 0 {
		return goerr.Wrap(types.ErrNotFound, "session no longer exists", goerr.V("id", sess.ID))
	}
	if stored != sess.Version {
		return goerr.Wrap(types.ErrConflict, "session was updated by another request",
			goerr.V("id", sess.ID),
			goerr.V("stored", stored),
			goerr.V("version", sess.Version),
		)
	}

	sess.Version++
	r.sessions[sess.ID] = sess.Copy()
	return nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id types.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
