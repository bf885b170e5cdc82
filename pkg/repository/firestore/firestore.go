package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionSession = "session"

type sessionRepository struct {
	client     *firestore.Client
	collection string
}

// sessionDoc stores the session as JSON so nested types need no Firestore mapping.
type sessionDoc struct {
	Data      string    `firestore:"data"`
	UserLogin string    `firestore:"user_login"`
	ExpiresAt time.Time `firestore:"expires_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type Option func(*sessionRepository)

// WithCollection overrides the collection name, e.g. to isolate test runs.
func WithCollection(name string) Option {
	return func(r *sessionRepository) {
		r.collection = name
	}
}

// New creates a new Firestore-based session repository
func New(ctx context.Context, projectID types.GoogleProjectID, databaseID string, options ...Option) (interfaces.SessionRepository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID.String(), databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID.String())
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	repo := &sessionRepository{
		client:     client,
		collection: collectionSession,
	}
	for _, opt := range options {
		opt(repo)
	}
	return repo, nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.Wrap(types.ErrNotFound, "session ID is empty")
	}

	snap, err := r.client.Collection(r.collection).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("id", id))
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session document", goerr.V("id", id))
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(doc.Data), &sess); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session", goerr.V("id", id))
	}

	if sess.Expired(logging.CtxTime(ctx)) {
		if err := r.DeleteSession(ctx, id); err != nil {
			return nil, err
		}
		return nil, goerr.Wrap(types.ErrNotFound, "session expired", goerr.V("id", id))
	}

	return &sess, nil
}

func (r *sessionRepository) PutSession(ctx context.Context, sess *model.Session) error {
	if sess.ID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "session ID is empty")
	}

	next := *sess
	next.Version++
	raw, err := json.Marshal(&next)
	if err != nil {
		return goerr.Wrap(err, "failed to encode session", goerr.V("id", sess.ID))
	}
	doc := &sessionDoc{
		Data:      string(raw),
		UserLogin: sess.User.Login,
		ExpiresAt: sess.ExpiresAt,
		UpdatedAt: logging.CtxTime(ctx),
	}

	ref := r.client.Collection(r.collection).Doc(string(sess.ID))
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var stored int64
		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
			if sess.Version != 0 {
				return goerr.Wrap(types.ErrNotFound, "session no longer exists", goerr.V("id", sess.ID))
			}
		case err != nil:
			return goerr.Wrap(err, "failed to get session", goerr.V("id", sess.ID))
		default:
			var current sessionDoc
			if err := snap.DataTo(&current); err != nil {
				return goerr.Wrap(err, "failed to decode session document", goerr.V("id", sess.ID))
			}
			var stale model.Session
			if err := json.Unmarshal([]byte(current.Data), &stale); err != nil {
				return goerr.Wrap(err, "failed to decode session", goerr.V("id", sess.ID))
			}
			stored = stale.Version
		}
		if stored != sess.Version {
			return goerr.Wrap(types.ErrConflict, "session was updated by another request",
				goerr.V("id", sess.ID),
				goerr.V("stored", stored),
				goerr.V("version", sess.Version),
			)
		}
		return tx.Set(ref, doc)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put session", goerr.V("id", sess.ID))
	}

	sess.Version = next.Version
	return nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id types.SessionID) error {
	if _, err := r.client.Collection(r.collection).Doc(string(id)).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete session", goerr.V("id", id))
	}
	return nil
}
