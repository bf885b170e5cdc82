// Package insights wraps the Google PageSpeed Insights and Search Console APIs.
package insights

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
)

func wrapGoogleError(err error, msg string, values ...goerr.Option) error {
	values = append(values, goerr.V("cause", err.Error()))

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		values = append(values, goerr.V("status", apiErr.Code))
		switch apiErr.Code {
		case http.StatusBadRequest:
			return goerr.Wrap(types.ErrValidationFailed, msg, values...)
		case http.StatusUnauthorized:
			return goerr.Wrap(types.ErrUnauthorized, msg, values...)
		case http.StatusForbidden:
			return goerr.Wrap(types.ErrForbidden, msg, values...)
		case http.StatusNotFound:
			return goerr.Wrap(types.ErrNotFound, msg, values...)
		}
	}
	return goerr.Wrap(types.ErrUpstream, msg, values...)
}
