package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.String("request_id", string(reqID)))
		ctx = logging.With(ctx, logger)

		w.Header().Set("X-Request-Id", string(reqID))
		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		logger.Info("http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.String("referer", r.Referer()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer (flush, deadlines).
func (x *statusCodeLogger) Unwrap() http.ResponseWriter {
	return x.ResponseWriter
}

// authenticate resolves the cookie to a server-side session. Requests without a live session are
// rejected with 401.
func (x *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := x.cookies.sessionID(r)
		sess, err := x.uc.LookupSession(ctx, id)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		actor := logging.Actor{Login: sess.User.Login}
		if sess.ActiveRepository != nil {
			actor.Repository = sess.ActiveRepository.FullName
		}
		logger := logging.From(ctx).With(
			slog.Any("session_id", sess.ID),
			slog.Any("actor", actor),
		)
		ctx = logging.With(ctx, logger)
		ctx = logging.CtxWithActor(ctx, actor)
		ctx = ctxWithSession(ctx, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
