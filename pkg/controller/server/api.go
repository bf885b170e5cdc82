package server

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// handle binds fn to the signed-in session. The result of fn becomes the data of the envelope.
func handle[T any](fn func(w http.ResponseWriter, r *http.Request, sess *model.Session) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data, err := fn(w, r, ctxSession(ctx))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, data)
	}
}

// withBody decodes the request body and passes it to fn.
func withBody[In, Out any](fn func(r *http.Request, sess *model.Session, input *In) (Out, error)) func(http.ResponseWriter, *http.Request, *model.Session) (Out, error) {
	return func(w http.ResponseWriter, r *http.Request, sess *model.Session) (Out, error) {
		input, err := decodeBody[In](w, r, false)
		if err != nil {
			var zero Out
			return zero, err
		}
		return fn(r, sess, input)
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.Wrap(types.ErrValidationFailed, "query parameter must be an integer", goerr.V("key", key), goerr.V("value", v))
	}
	return n, nil
}
