package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/insights"
	"github.com/urfave/cli/v3"
)

type Google struct {
	pageSpeedKey  types.GoogleAPIKey `masq:"secret"`
	pageSpeed     bool
	searchConsole bool
}

func (x *Google) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "pagespeed",
			Usage:       "Enable PageSpeed Insights analysis",
			Category:    "Google",
			Destination: &x.pageSpeed,
			Sources:     cli.EnvVars("ASTRODASH_PAGESPEED"),
		},
		&cli.StringFlag{
			Name:        "pagespeed-api-key",
			Usage:       "PageSpeed Insights API key (anonymous quota is used without it)",
			Category:    "Google",
			Destination: (*string)(&x.pageSpeedKey),
			Sources:     cli.EnvVars("ASTRODASH_PAGESPEED_API_KEY"),
		},
		&cli.BoolFlag{
			Name:        "search-console",
			Usage:       "Enable Search Console queries with Application Default Credentials",
			Category:    "Google",
			Destination: &x.searchConsole,
			Sources:     cli.EnvVars("ASTRODASH_SEARCH_CONSOLE"),
		},
	}
}

// NewPageSpeed returns nil unless enabled. Setting an API key enables it implicitly.
func (x *Google) NewPageSpeed(ctx context.Context) (interfaces.PageSpeed, error) {
	if !x.pageSpeed && x.pageSpeedKey == "" {
		return nil, nil
	}
	client, err := insights.NewPageSpeed(ctx, x.pageSpeedKey)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *Google) NewSearchConsole(ctx context.Context) (interfaces.SearchConsole, error) {
	if !x.searchConsole {
		return nil, nil
	}
	client, err := insights.NewSearchConsole(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x Google) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("PageSpeed", x.pageSpeed),
		slog.Int("PageSpeedKey.len", len(x.pageSpeedKey)),
		slog.Bool("SearchConsole", x.searchConsole),
	)
}
