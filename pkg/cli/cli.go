package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type CLI struct{}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var logOpt logging.Options

	app := &cli.Command{
		Name:  "astrodash",
		Usage: "Dashboard backend for Astro blogs hosted on GitHub",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("ASTRODASH_LOG_LEVEL"),
				Destination: &logOpt.Level,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("ASTRODASH_LOG_FORMAT"),
				Destination: &logOpt.Format,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Aliases:     []string{"o"},
				Sources:     cli.EnvVars("ASTRODASH_LOG_OUTPUT"),
				Destination: &logOpt.Output,
				Value:       "-",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			analyzeCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, logging.Configure(logOpt)
		},
	}

	if err := app.Run(context.Background(), argv); err != nil {
		logging.Default().Error("fatal error", slog.Any("error", err))
		return err
	}

	return nil
}
