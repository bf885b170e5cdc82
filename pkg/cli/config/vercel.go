package config

import (
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/vercel"
	"github.com/urfave/cli/v3"
)

type Vercel struct {
	token  types.VercelToken `masq:"secret"`
	teamID string
}

func (x *Vercel) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vercel-token",
			Usage:       "Vercel API token (optional, enables deployment features)",
			Category:    "Vercel",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("ASTRODASH_VERCEL_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "vercel-team-id",
			Usage:       "Vercel team ID owning the projects",
			Category:    "Vercel",
			Destination: &x.teamID,
			Sources:     cli.EnvVars("ASTRODASH_VERCEL_TEAM_ID"),
		},
	}
}

// NewClient returns nil when no token is configured.
func (x *Vercel) NewClient() (interfaces.Vercel, error) {
	if x.token == "" {
		return nil, nil
	}

	var options []vercel.Option
	if x.teamID != "" {
		options = append(options, vercel.WithTeamID(x.teamID))
	}
	client, err := vercel.New(x.token, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x Vercel) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Token.len", len(x.token)),
		slog.String("TeamID", x.teamID),
	)
}
