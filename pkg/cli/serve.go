package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/astrodash/pkg/cli/config"
	"github.com/m-mizutani/astrodash/pkg/controller/server"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/astrodash/pkg/utils/errutil"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

const sessionPurgeInterval = time.Hour

func serveCommand() *cli.Command {
	var (
		addr string

		github   config.GitHub
		session  config.Session
		vercel   config.Vercel
		google   config.Google
		bigQuery config.BigQuery
		storage  config.CloudStorage
		layout   config.Layout
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ASTRODASH_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			github.Flags(),
			session.Flags(),
			vercel.Flags(),
			google.Flags(),
			bigQuery.Flags(),
			storage.Flags(),
			layout.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("GitHub", github),
				slog.Any("Session", session),
				slog.Any("Vercel", vercel),
				slog.Any("Google", google),
				slog.Any("BigQuery", bigQuery),
				slog.Any("CloudStorage", storage),
				slog.Any("Layout", layout),
				slog.Any("Sentry", sentry),
			)

			flushSentry, err := sentry.Configure(ctx)
			if err != nil {
				return err
			}
			defer flushSentry()

			siteLayout, err := layout.Load()
			if err != nil {
				return err
			}

			sessions, closeSessions, err := session.NewRepository(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSessions(); err != nil {
					logging.Default().Warn("failed to close session store", slog.Any("error", err))
				}
			}()

			infraOptions := []infra.Option{
				infra.WithGitHub(github.NewFactory()),
				infra.WithSessionRepository(sessions),
			}

			if client, err := github.NewOAuth(); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithOAuth(client))
			}
			if client, err := vercel.NewClient(); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithVercel(client))
			}
			if client, err := google.NewPageSpeed(ctx); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithPageSpeed(client))
			}
			if client, err := google.NewSearchConsole(ctx); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithSearchConsole(client))
			}
			if client, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithAuditLog(client))
			}
			if client, err := storage.NewClient(ctx); err != nil {
				return err
			} else if client != nil {
				infraOptions = append(infraOptions, infra.WithObjectStorage(client))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients,
				usecase.WithLayout(siteLayout),
				usecase.WithSessionTTL(session.TTL()),
			)
			s := server.New(uc,
				server.WithWebhookSecret(github.WebhookSecret()),
				server.WithCookieKey(session.CookieKey()),
				server.WithSecureCookie(session.SecureCookie()),
				server.WithSessionTTL(session.TTL()),
				server.WithDashboardURL(session.DashboardURL()),
			)

			purgeCtx, stopPurge := context.WithCancel(ctx)
			defer stopPurge()
			go purgeExpiredSessions(purgeCtx, sessions)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// Performance cleanup re-encodes images and commits several files.
				WriteTimeout: 120 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", slog.String("addr", addr))
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", slog.Any("signal", sig))

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

type expiredSessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// purgeExpiredSessions removes expired rows from stores that keep them. Other stores drop expired
// sessions on read.
func purgeExpiredSessions(ctx context.Context, repo interfaces.SessionRepository) {
	purger, ok := repo.(expiredSessionPurger)
	if !ok {
		return
	}

	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.DeleteExpired(ctx)
			if err != nil {
				errutil.HandleError(ctx, "failed to purge expired sessions", err)
				continue
			}
			if n > 0 {
				logging.From(ctx).Info("purged expired sessions", slog.Int64("count", n))
			}
		}
	}
}
