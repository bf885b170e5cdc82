package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/errutil"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const maxRequestBody = 8 << 20

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is JSON encoded by the server
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, resp *apiResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		errutil.HandleError(ctx, "fail to marshal response", err)
		code = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

func writeData(ctx context.Context, w http.ResponseWriter, data any) {
	writeJSON(ctx, w, http.StatusOK, &apiResponse{Success: true, Data: data})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrConflict), errors.Is(err, types.ErrNoActiveRepository):
		return http.StatusConflict
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrNotConfigured):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Only unexpected errors are reported to Sentry; their
// message is not shown to the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := statusOf(err)
	msg := err.Error()

	if code == http.StatusInternalServerError {
		errutil.HandleError(ctx, "request failed", err)
		msg = "internal server error"
	} else {
		logging.From(ctx).Info("request rejected", slog.Int("status", code), slog.Any("error", err))
	}

	writeJSON(ctx, w, code, &apiResponse{Success: false, Error: msg})
}

// decodeBody reads a JSON request body into a new T. An empty body yields the zero value when
// optional is set.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, optional bool) (*T, error) {
	var v T
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := json.NewDecoder(body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) && optional {
			return &v, nil
		}
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid request body", goerr.V("error", err.Error()))
	}
	return &v, nil
}
