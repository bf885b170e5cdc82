package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// getSettings reads a settings file of the active branch. A missing file yields the zero value
// without sha, so the first save creates it.
func getSettings[T model.Settings](ctx context.Context, x *UseCase, sess *model.Session) (*model.SettingsDocument[T], error) {
	var zero T
	p := x.layout.SettingsPath(zero.Kind())

	content, err := x.ReadContent(ctx, sess, p)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return &model.SettingsDocument[T]{Value: zero}, nil
		}
		return nil, err
	}

	var value T
	if err := json.Unmarshal([]byte(content.Content), &value); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "settings file is not valid JSON",
			goerr.V("path", p),
			goerr.V("error", err.Error()),
		)
	}
	return &model.SettingsDocument[T]{Value: value, SHA: content.SHA}, nil
}

func putSettings[T model.Settings](ctx context.Context, x *UseCase, sess *model.Session, input *model.SettingsInput[T]) (*model.SettingsDocument[T], error) {
	if err := input.Value.Validate(); err != nil {
		return nil, err
	}

	kind := input.Value.Kind()
	raw, err := json.MarshalIndent(input.Value, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode settings", goerr.V("kind", kind))
	}

	message := input.Message
	if message == "" {
		message = "Update " + string(kind) + " settings"
	}
	result, err := x.putFile(ctx, sess, x.layout.SettingsPath(kind), append(raw, '\n'), message, input.BaseSHA)
	if err != nil {
		return nil, err
	}
	return &model.SettingsDocument[T]{Value: input.Value, SHA: result.SHA}, nil
}

func (x *UseCase) GetBranding(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Branding], error) {
	return getSettings[model.Branding](ctx, x, sess)
}

func (x *UseCase) PutBranding(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Branding]) (*model.SettingsDocument[model.Branding], error) {
	return putSettings(ctx, x, sess, input)
}

func (x *UseCase) GetNavigation(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Navigation], error) {
	return getSettings[model.Navigation](ctx, x, sess)
}

func (x *UseCase) PutNavigation(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Navigation]) (*model.SettingsDocument[model.Navigation], error) {
	return putSettings(ctx, x, sess, input)
}

func (x *UseCase) GetTheme(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Theme], error) {
	return getSettings[model.Theme](ctx, x, sess)
}

func (x *UseCase) PutTheme(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Theme]) (*model.SettingsDocument[model.Theme], error) {
	return putSettings(ctx, x, sess, input)
}

func (x *UseCase) GetAdSense(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.AdSense], error) {
	return getSettings[model.AdSense](ctx, x, sess)
}

func (x *UseCase) PutAdSense(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.AdSense]) (*model.SettingsDocument[model.AdSense], error) {
	return putSettings(ctx, x, sess, input)
}

func (x *UseCase) GetContentDefaults(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.ContentDefaults], error) {
	return getSettings[model.ContentDefaults](ctx, x, sess)
}

func (x *UseCase) PutContentDefaults(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.ContentDefaults]) (*model.SettingsDocument[model.ContentDefaults], error) {
	return putSettings(ctx, x, sess, input)
}
