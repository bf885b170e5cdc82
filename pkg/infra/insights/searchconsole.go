package insights

import (
	"context"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"
)

const (
	defaultSearchRowLimit = 25
	searchDateLayout      = "2006-01-02"
)

type SearchConsole struct {
	svc *searchconsole.Service
	now func() time.Time
}

var _ interfaces.SearchConsole = (*SearchConsole)(nil)

// NewSearchConsole uses Application Default Credentials unless opts say otherwise. The identity must
// be added as a user of the Search Console property.
func NewSearchConsole(ctx context.Context, opts ...option.ClientOption) (*SearchConsole, error) {
	opts = append(opts, option.WithScopes(searchconsole.WebmastersReadonlyScope))
	svc, err := searchconsole.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Search Console service")
	}
	return &SearchConsole{svc: svc, now: time.Now}, nil
}

func (x *SearchConsole) QueryPerformance(ctx context.Context, input *model.SearchPerformanceInput) (*model.SearchPerformance, error) {
	start, end := searchRange(x.now(), input.Days)
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchRowLimit
	}

	req := &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  start,
		EndDate:    end,
		Dimensions: []string{"query"},
		RowLimit:   int64(limit),
	}
	resp, err := x.svc.Searchanalytics.Query(input.SiteURL, req).Context(ctx).Do()
	if err != nil {
		return nil, wrapGoogleError(err, "failed to query Search Console", goerr.V("site", input.SiteURL))
	}

	return toSearchPerformance(input.SiteURL, start, end, resp), nil
}

// searchRange ends yesterday since Search Console data for today is incomplete.
func searchRange(now time.Time, days int) (string, string) {
	end := now.UTC().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return start.Format(searchDateLayout), end.Format(searchDateLayout)
}

func toSearchPerformance(site, start, end string, resp *searchconsole.SearchAnalyticsQueryResponse) *model.SearchPerformance {
	result := &model.SearchPerformance{
		SiteURL:   site,
		StartDate: start,
		EndDate:   end,
		Rows:      []*model.SearchQueryRow{},
	}
	for _, row := range resp.Rows {
		if len(row.Keys) == 0 {
			continue
		}
		result.Rows = append(result.Rows, &model.SearchQueryRow{
			Query:       row.Keys[0],
			Clicks:      row.Clicks,
			Impressions: row.Impressions,
			CTR:         row.Ctr,
			Position:    row.Position,
		})
	}
	return result
}
