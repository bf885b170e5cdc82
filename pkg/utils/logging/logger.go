package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

var (
	defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

	outputMutex sync.Mutex
	openedFile  io.Closer
)

func init() {
	_ = Configure(Options{})
}

func Default() *slog.Logger {
	return defaultLogger
}

// Options selects the handler of the default logger. Zero values mean text, info and stdout.
type Options struct {
	Format string
	Level  string
	Output string
}

func (x Options) withDefaults() Options {
	if x.Format == "" {
		x.Format = "text"
	}
	if x.Level == "" {
		x.Level = "info"
	}
	if x.Output == "" {
		x.Output = "stdout"
	}
	return x
}

var levelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newFilter masks credentials: GitHub, Vercel and Google tokens, the webhook secret and raw auth headers.
func newFilter() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithType[types.GitHubToken](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.GitHubOAuthClientSecret](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.GitHubWebhookSecret](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.VercelToken](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.GoogleAPIKey](masq.MaskWithSymbol('*', 16)),
		masq.WithFieldName("Authorization"),
		masq.WithFieldName("Cookie"),
		masq.WithContain("ghp_"),
		masq.WithContain("gho_"),
	)
}

// Configure replaces the default logger. A log file opened by a previous call is closed.
func Configure(opt Options) error {
	opt = opt.withDefaults()

	level, ok := levelMap[opt.Level]
	if !ok {
		return goerr.Wrap(types.ErrInvalidOption, "invalid log level", goerr.V("value", opt.Level))
	}

	var (
		w    io.Writer
		file *os.File
	)
	switch opt.Output {
	case "stdout", "-":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		fd, err := os.OpenFile(filepath.Clean(opt.Output), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return goerr.Wrap(err, "failed to open log file", goerr.V("path", opt.Output))
		}
		w, file = fd, fd
	}

	filter := newFilter()
	var handler slog.Handler
	switch opt.Format {
	case "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(level == slog.LevelDebug),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
			clog.WithAttrHook(hooks.GoErr()),
			clog.WithReplaceAttr(filter),
		)

	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})

	default:
		if file != nil {
			_ = file.Close()
		}
		return goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", opt.Format))
	}

	outputMutex.Lock()
	defer outputMutex.Unlock()
	if openedFile != nil {
		_ = openedFile.Close()
		openedFile = nil
	}
	if file != nil {
		openedFile = file
	}
	defaultLogger = slog.New(handler)

	return nil
}
