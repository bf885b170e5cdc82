// Package sqlite keeps sessions in a local SQLite file so they survive restarts of a single instance.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/astrodash/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

type SessionRepository struct {
	db *sql.DB
}

// New opens (or creates) the database at path and creates the sessions table.
func New(path string) (*SessionRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("path", path))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open SQLite database", goerr.V("path", path))
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		safe.Close(context.Background(), db)
		return nil, goerr.Wrap(err, "failed to configure SQLite", goerr.V("path", path))
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	repo := &SessionRepository{db: db}
	if err := repo.ensureSchema(); err != nil {
		safe.Close(context.Background(), db)
		return nil, err
	}
	return repo, nil
}

func (r *SessionRepository) Close() error {
	return r.db.Close()
}

func (r *SessionRepository) ensureSchema() error {
	_, err := r.db.Exec(`
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    expires_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);
`)
	if err != nil {
		return goerr.Wrap(err, "failed to create sessions table")
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, string(id)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(types.ErrNotFound, "session not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("id", id))
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
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

func (r *SessionRepository) PutSession(ctx context.Context, sess *model.Session) error {
	if sess.ID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "session ID is empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(ctx, tx)

	var stored int64
	var data string
	err = tx.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, string(sess.ID)).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if sess.Version != 0 {
			return goerr.Wrap(types.ErrNotFound, "session no longer exists", goerr.V("id", sess.ID))
		}
	case err != nil:
		return goerr.Wrap(err, "failed to get session", goerr.V("id", sess.ID))
	default:
		var current model.Session
		if err := json.Unmarshal([]byte(data), &current); err != nil {
			return goerr.Wrap(err, "failed to decode session", goerr.V("id", sess.ID))
		}
		stored = current.Version
	}
	if stored != sess.Version {
		return goerr.Wrap(types.ErrConflict, "session was updated by another request",
			goerr.V("id", sess.ID),
			goerr.V("stored", stored),
			goerr.V("version", sess.Version),
		)
	}

	next := *sess
	next.Version++
	raw, err := json.Marshal(&next)
	if err != nil {
		return goerr.Wrap(err, "failed to encode session", goerr.V("id", sess.ID))
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO sessions (id, data, expires_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		string(sess.ID), string(raw), sess.ExpiresAt.Unix(), logging.CtxTime(ctx).Unix(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to put session", goerr.V("id", sess.ID))
	}
	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit session", goerr.V("id", sess.ID))
	}

	sess.Version = next.Version
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id types.SessionID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, string(id)); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("id", id))
	}
	return nil
}

// DeleteExpired removes sessions whose expiry has passed and returns how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(ctx, tx)

	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at > 0 AND expires_at < ?`, logging.CtxTime(ctx).Unix())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete expired sessions")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count deleted sessions")
	}
	if err := tx.Commit(); err != nil {
		return 0, goerr.Wrap(err, "failed to commit transaction")
	}
	return n, nil
}
