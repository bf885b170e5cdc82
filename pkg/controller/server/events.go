package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

const sseHeartbeat = 25 * time.Second

// handleEvents streams cache invalidation events of the session as server-sent events. Each event
// names the topics the dashboard must refetch.
func (x *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := ctxSession(ctx)
	logger := logging.From(ctx)

	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug("write deadline is not adjustable", slog.Any("error", err))
	}

	events, cancel := x.uc.SubscribeInvalidation(sess)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		logger.Warn("streaming is not supported", slog.Any("error", err))
		return
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}

		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Error("fail to marshal invalidation event", slog.Any("error", err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: invalidate\ndata: %s\n\n", data); err != nil {
				return
			}
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}
