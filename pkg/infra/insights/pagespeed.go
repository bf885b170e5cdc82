package insights

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/pagespeedonline/v5"
)

// Categories requested from Lighthouse, reported with lower-case keys.
var pageSpeedCategories = []string{"PERFORMANCE", "ACCESSIBILITY", "BEST_PRACTICES", "SEO"}

// Core metrics copied into the report by their Lighthouse audit id.
var pageSpeedMetrics = []string{
	"first-contentful-paint",
	"largest-contentful-paint",
	"total-blocking-time",
	"cumulative-layout-shift",
	"speed-index",
	"interactive",
}

type PageSpeed struct {
	svc *pagespeedonline.Service
	now func() time.Time
}

var _ interfaces.PageSpeed = (*PageSpeed)(nil)

func NewPageSpeed(ctx context.Context, apiKey types.GoogleAPIKey, opts ...option.ClientOption) (*PageSpeed, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(string(apiKey)))
	}
	svc, err := pagespeedonline.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create PageSpeed Insights service")
	}
	return &PageSpeed{svc: svc, now: time.Now}, nil
}

func (x *PageSpeed) Analyze(ctx context.Context, input *model.PageSpeedInput) (*model.PageSpeedReport, error) {
	strategy := input.Strategy
	if strategy == "" {
		strategy = "mobile"
	}

	resp, err := x.svc.Pagespeedapi.Runpagespeed(input.URL).
		Strategy(strings.ToUpper(strategy)).
		Category(pageSpeedCategories...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapGoogleError(err, "failed to run PageSpeed Insights", goerr.V("url", input.URL))
	}

	report := toPageSpeedReport(resp, strategy)
	report.FetchedAt = x.now()
	return report, nil
}

func toPageSpeedReport(resp *pagespeedonline.PagespeedApiPagespeedResponseV5, strategy string) *model.PageSpeedReport {
	report := &model.PageSpeedReport{
		URL:      resp.Id,
		Strategy: strategy,
		Scores:   map[string]int{},
		Metrics:  map[string]string{},
	}

	lh := resp.LighthouseResult
	if lh == nil {
		return report
	}
	if lh.FinalUrl != "" {
		report.URL = lh.FinalUrl
	}
	if lh.RuntimeError != nil && lh.RuntimeError.Message != "" {
		report.Diagnostics = append(report.Diagnostics, lh.RuntimeError.Message)
	}

	if c := lh.Categories; c != nil {
		for key, cat := range map[string]*pagespeedonline.LighthouseCategoryV5{
			"performance":    c.Performance,
			"accessibility":  c.Accessibility,
			"best-practices": c.BestPractices,
			"seo":            c.Seo,
		} {
			if cat == nil {
				continue
			}
			if score, ok := scoreOf(cat.Score); ok {
				report.Scores[key] = score
			}
		}
	}

	for _, id := range pageSpeedMetrics {
		if audit, ok := lh.Audits[id]; ok && audit.DisplayValue != "" {
			report.Metrics[id] = audit.DisplayValue
		}
	}

	return report
}

// scoreOf converts a Lighthouse 0..1 score to 0..100. Scores are null when a category errored.
func scoreOf(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(math.Round(f * 100)), true
}
