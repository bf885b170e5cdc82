package safe

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

// Close closes closer and logs a failure with the logger of ctx. io.EOF and an already closed file are not failures.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
		logging.From(ctx).Warn("failed to close resource", slog.Any("error", err))
	}
}

// Rollback rolls tx back unless it has been committed.
func Rollback(ctx context.Context, tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.From(ctx).Warn("failed to roll back transaction", slog.Any("error", err))
	}
}
