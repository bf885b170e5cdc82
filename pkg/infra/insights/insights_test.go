package insights_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/insights"
	"github.com/m-mizutani/gt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/pagespeedonline/v5"
	"google.golang.org/api/searchconsole/v1"
)

func TestToPageSpeedReport(t *testing.T) {
	resp := &pagespeedonline.PagespeedApiPagespeedResponseV5{
		Id: "https://example.com/",
		LighthouseResult: &pagespeedonline.LighthouseResultV5{
			FinalUrl: "https://example.com/home",
			Categories: &pagespeedonline.Categories{
				Performance:   &pagespeedonline.LighthouseCategoryV5{Score: 0.874},
				Accessibility: &pagespeedonline.LighthouseCategoryV5{Score: 1.0},
				Seo:           &pagespeedonline.LighthouseCategoryV5{Score: nil},
			},
			Audits: map[string]pagespeedonline.LighthouseAuditResultV5{
				"largest-contentful-paint": {DisplayValue: "2.1 s"},
				"unrelated-audit":          {DisplayValue: "ignored"},
			},
		},
	}

	report := insights.ToPageSpeedReportForTest(resp, "mobile")
	gt.V(t, report.URL).Equal("https://example.com/home")
	gt.V(t, report.Scores["performance"]).Equal(87)
	gt.V(t, report.Scores["accessibility"]).Equal(100)
	_, hasSEO := report.Scores["seo"]
	gt.False(t, hasSEO)
	gt.V(t, report.Metrics).Equal(map[string]string{"largest-contentful-paint": "2.1 s"})
}

func TestToSearchPerformance(t *testing.T) {
	resp := &searchconsole.SearchAnalyticsQueryResponse{
		Rows: []*searchconsole.ApiDataRow{
			{Keys: []string{"astro blog"}, Clicks: 12, Impressions: 300, Ctr: 0.04, Position: 3.2},
			{Keys: nil, Clicks: 1},
		},
	}

	perf := insights.ToSearchPerformanceForTest("sc-domain:example.com", "2024-01-01", "2024-01-28", resp)
	gt.A(t, perf.Rows).Length(1)
	gt.V(t, perf.Rows[0].Query).Equal("astro blog")
	gt.V(t, perf.Rows[0].CTR).Equal(0.04)
}

func TestSearchRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	start, end := insights.SearchRangeForTest(now, 28)
	gt.V(t, end).Equal("2024-03-09")
	gt.V(t, start).Equal("2024-02-11")
}

func TestWrapGoogleError(t *testing.T) {
	err := insights.WrapGoogleErrorForTest(&googleapi.Error{Code: http.StatusForbidden}, "denied")
	gt.True(t, errors.Is(err, types.ErrForbidden))

	err = insights.WrapGoogleErrorForTest(errors.New("connection reset"), "network")
	gt.True(t, errors.Is(err, types.ErrUpstream))
}
