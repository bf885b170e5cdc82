package usecase

import (
	"context"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (x *UseCase) AnalyzePageSpeed(ctx context.Context, input *model.PageSpeedInput) (*model.PageSpeedReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if x.clients.PageSpeed() == nil {
		return nil, goerr.Wrap(types.ErrNotConfigured, "PageSpeed Insights is not configured")
	}
	if input.Strategy == "" {
		input.Strategy = "mobile"
	}
	return x.clients.PageSpeed().Analyze(ctx, input)
}

func (x *UseCase) QuerySearchPerformance(ctx context.Context, input *model.SearchPerformanceInput) (*model.SearchPerformance, error) {
	if input.Days == 0 {
		input.Days = 28
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if x.clients.SearchConsole() == nil {
		return nil, goerr.Wrap(types.ErrNotConfigured, "Search Console is not configured")
	}
	if input.Limit <= 0 {
		input.Limit = 25
	}
	return x.clients.SearchConsole().QueryPerformance(ctx, input)
}
