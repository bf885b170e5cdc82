package model

import (
	"net/url"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type PageSpeedInput struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy,omitempty"`
}

func (x *PageSpeedInput) Validate() error {
	u, err := url.Parse(x.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return goerr.Wrap(types.ErrValidationFailed, "url must be an absolute http(s) URL", goerr.V("url", x.URL))
	}
	switch x.Strategy {
	case "", "mobile", "desktop":
	default:
		return goerr.Wrap(types.ErrValidationFailed, "strategy must be mobile or desktop", goerr.V("strategy", x.Strategy))
	}
	return nil
}

// PageSpeedReport holds category scores on a 0-100 scale and Lighthouse metrics in display form.
type PageSpeedReport struct {
	URL         string            `json:"url"`
	Strategy    string            `json:"strategy"`
	Scores      map[string]int    `json:"scores"`
	Metrics     map[string]string `json:"metrics"`
	FetchedAt   time.Time         `json:"fetchedAt"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

type SearchPerformanceInput struct {
	SiteURL string
	Days    int
	Limit   int
}

func (x *SearchPerformanceInput) Validate() error {
	if x.SiteURL == "" {
		return goerr.Wrap(types.ErrValidationFailed, "site is required")
	}
	if x.Days <= 0 || x.Days > 480 {
		return goerr.Wrap(types.ErrValidationFailed, "days must be within 1..480", goerr.V("days", x.Days))
	}
	return nil
}

type SearchQueryRow struct {
	Query       string  `json:"query"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

type SearchPerformance struct {
	SiteURL   string            `json:"siteUrl"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Rows      []*SearchQueryRow `json:"rows"`
}
