package server_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/astrodash/pkg/controller/server"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestDetachContext(t *testing.T) {
	logger := slog.New(slog.DiscardHandler).With("component", "webhook")
	pinned := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.With(ctx, logger)
	ctx = logging.CtxWithTime(ctx, func() time.Time { return pinned })
	ctx = logging.CtxWithActor(ctx, logging.Actor{Login: "octocat", Repository: "octo/blog"})
	reqID, ctx := logging.CtxRequestID(ctx)

	detached := server.DetachContext(ctx)
	cancel()

	gt.V(t, ctx.Err()).Equal(context.Canceled)
	gt.V(t, detached.Err()).Equal(nil)

	gt.V(t, logging.From(detached)).Equal(logger)
	gt.V(t, logging.CtxTime(detached)).Equal(pinned)
	gotID, _ := logging.CtxRequestID(detached)
	gt.V(t, gotID).Equal(reqID)
	actor, ok := logging.CtxActor(detached)
	gt.True(t, ok)
	gt.V(t, actor.Repository).Equal("octo/blog")
}
