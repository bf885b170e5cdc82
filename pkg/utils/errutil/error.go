package errutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Reportable tells whether err should reach Sentry. A caller that went away is not a failure of ours.
func Reportable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// HandleError logs err with the request logger and reports it to Sentry, tagged with the request ID and actor.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	if !Reportable(err) {
		logger.Warn(msg, slog.Any("error", err))
		return
	}

	reqID, _ := logging.CtxRequestID(ctx)
	actor, hasActor := logging.CtxActor(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", string(reqID))
		if hasActor {
			scope.SetUser(sentry.User{Username: actor.Login})
			if actor.Repository != "" {
				scope.SetTag("repository", actor.Repository)
			}
		}
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logger.Error(msg,
		slog.Any("error", err),
		slog.Any("sentry.EventID", evID),
	)
}
