package config

import (
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Layout describes where the Astro site keeps posts, pages, settings and images. Without a file the
// default Astro blog starter layout is used.
type Layout struct {
	path           string
	templateBranch string
}

func (x *Layout) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "layout",
			Usage:       "TOML file overriding the site layout",
			Category:    "Layout",
			Destination: &x.path,
			Sources:     cli.EnvVars("ASTRODASH_LAYOUT"),
		},
		&cli.StringFlag{
			Name:        "template-branch",
			Usage:       "Branch new site branches are created from (default: repository default branch)",
			Category:    "Layout",
			Destination: &x.templateBranch,
			Sources:     cli.EnvVars("ASTRODASH_TEMPLATE_BRANCH"),
		},
	}
}

func (x *Layout) Load() (model.SiteLayout, error) {
	layout := model.DefaultSiteLayout()

	if x.path != "" {
		md, err := toml.DecodeFile(x.path, &layout)
		if err != nil {
			return model.SiteLayout{}, goerr.Wrap(types.ErrInvalidOption, "failed to read layout file",
				goerr.V("path", x.path),
				goerr.V("error", err.Error()),
			)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return model.SiteLayout{}, goerr.Wrap(types.ErrInvalidOption, "unknown keys in layout file",
				goerr.V("path", x.path),
				goerr.V("keys", keys),
			)
		}
	}
	if x.templateBranch != "" {
		layout.TemplateBranch = x.templateBranch
	}

	if err := layout.Validate(); err != nil {
		return model.SiteLayout{}, err
	}
	return layout, nil
}

func (x Layout) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Path", x.path),
		slog.String("TemplateBranch", x.templateBranch),
	)
}
