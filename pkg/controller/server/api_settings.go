package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
)

func settingsRoutes[T model.Settings](
	r chi.Router,
	pattern string,
	get func(ctx context.Context, sess *model.Session) (*model.SettingsDocument[T], error),
	put func(ctx context.Context, sess *model.Session, input *model.SettingsInput[T]) (*model.SettingsDocument[T], error),
) {
	r.Get(pattern, handle(func(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.SettingsDocument[T], error) {
		return get(r.Context(), sess)
	}))
	r.Put(pattern, handle(withBody(func(r *http.Request, sess *model.Session, input *model.SettingsInput[T]) (*model.SettingsDocument[T], error) {
		return put(r.Context(), sess, input)
	})))
}
