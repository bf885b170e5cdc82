package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

type (
	ctxRequestIDKey struct{}
	ctxLoggerKey    struct{}
	ctxTimeKey      struct{}
	ctxActorKey     struct{}
)

// CtxRequestID returns the request ID bound to ctx. A fresh ID is generated and bound when absent.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger bound to ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type TimeFunc func() time.Time

// CtxTime returns the clock of ctx. Tests pin it with CtxWithTime.
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}

// Actor is the signed-in user a request acts for.
type Actor struct {
	Login      string
	Repository string
}

func (x Actor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("login", x.Login),
		slog.String("repo", x.Repository),
	)
}

func CtxWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey{}, actor)
}

// CtxActor returns the actor of ctx. ok is false for unauthenticated requests and webhooks.
func CtxActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ctxActorKey{}).(Actor)
	return actor, ok
}

// InheritContextValues copies the request ID, clock and actor of src into dst.
// The logger is not copied; bind it with With.
func InheritContextValues(dst, src context.Context) context.Context {
	if reqID, ok := src.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, reqID)
	}
	if timeFunc, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = context.WithValue(dst, ctxTimeKey{}, timeFunc)
	}
	if actor, ok := src.Value(ctxActorKey{}).(Actor); ok {
		dst = context.WithValue(dst, ctxActorKey{}, actor)
	}
	return dst
}
