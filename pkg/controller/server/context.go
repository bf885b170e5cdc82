package server

import (
	"context"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

// DetachContext creates a new context.Background() based context that inherits
// logger, request ID, and time function from the original context.
// The original request context is cancelled as soon as the response is sent, so
// work that outlives the handler must run with the detached one.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := context.Background()
	bgCtx = logging.With(bgCtx, logging.From(ctx))
	bgCtx = logging.InheritContextValues(bgCtx, ctx)
	return bgCtx
}

type ctxSessionKey struct{}

func ctxWithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey{}, sess)
}

// ctxSession returns the session loaded by the authenticate middleware.
func ctxSession(ctx context.Context) *model.Session {
	if sess, ok := ctx.Value(ctxSessionKey{}).(*model.Session); ok {
		return sess
	}
	return nil
}
