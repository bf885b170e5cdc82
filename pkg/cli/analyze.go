package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/astrodash/pkg/cli/config"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/astrodash/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func analyzeCommand() *cli.Command {
	var (
		dir    string
		output string
		format string
		layout config.Layout
	)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Report unused and oversized images of a local clone",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Directory inside the git clone to analyze",
				Value:       ".",
				Sources:     cli.EnvVars("ASTRODASH_ANALYZE_DIR"),
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output file [-|<file>]",
				Value:       "-",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format [text|json]",
				Value:       "text",
				Destination: &format,
			},
		}, layout.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if format != "text" && format != "json" {
				return goerr.Wrap(types.ErrInvalidOption, "format must be text or json", goerr.V("format", format))
			}

			siteLayout, err := layout.Load()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(), usecase.WithLayout(siteLayout))
			report, err := uc.AnalyzeCheckout(ctx, dir)
			if err != nil {
				return err
			}
			logging.From(ctx).Debug("analysis finished",
				slog.String("repository", report.Repository),
				slog.Int("images", len(report.Images)),
			)

			var w io.Writer = os.Stdout
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer safe.Close(ctx, f)
				w = f
			}

			if format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return goerr.Wrap(err, "failed to write report")
				}
				return nil
			}
			return writeReportText(w, report)
		},
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func writeReportText(w io.Writer, report *model.PerformanceReport) error {
	unused := color.New(color.FgRed).SprintFunc()
	large := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	repo := report.Repository
	if repo == "" {
		repo = "(local)"
	}
	printf("%s %s @ %s\n", bold("Repository:"), repo, report.Branch)
	printf("%s %d images, %s total, %d files scanned\n",
		bold("Images:"), len(report.Images), humanSize(report.TotalSize), report.ScannedFiles)
	printf("%s %d (%s)\n", bold("Unused:"), report.UnusedCount, humanSize(report.UnusedSize))
	printf("%s %d (%s)\n\n", bold("Optimizable:"), report.OptimizableCount, humanSize(report.OptimizableSize))

	for _, img := range report.Images {
		var marks []string
		if !img.Used {
			marks = append(marks, unused("unused"))
		}
		if img.Optimizable {
			marks = append(marks, large("optimizable"))
		}
		if len(marks) == 0 {
			continue
		}
		printf("  %10s  %s  %v\n", humanSize(img.Size), img.Path, marks)
	}

	if err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}
