package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/repository/memory"
	"github.com/m-mizutani/astrodash/pkg/repository/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	StoreMemory    = "memory"
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
)

type Session struct {
	store        string
	sqlitePath   string
	ttl          time.Duration
	cookieKey    string `masq:"secret"`
	secureCookie bool
	dashboardURL string

	Firestore Firestore
}

func (x *Session) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "session-store",
			Usage:       "Session store [memory|sqlite|firestore]",
			Category:    "Session",
			Value:       StoreMemory,
			Destination: &x.store,
			Sources:     cli.EnvVars("ASTRODASH_SESSION_STORE"),
		},
		&cli.StringFlag{
			Name:        "session-sqlite-path",
			Usage:       "SQLite database file of the sqlite session store",
			Category:    "Session",
			Value:       "astrodash.db",
			Destination: &x.sqlitePath,
			Sources:     cli.EnvVars("ASTRODASH_SESSION_SQLITE_PATH"),
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a dashboard session",
			Category:    "Session",
			Value:       7 * 24 * time.Hour,
			Destination: &x.ttl,
			Sources:     cli.EnvVars("ASTRODASH_SESSION_TTL"),
		},
		&cli.StringFlag{
			Name:        "session-cookie-key",
			Usage:       "HMAC key signing the session cookie (32 bytes or more recommended)",
			Category:    "Session",
			Destination: &x.cookieKey,
			Sources:     cli.EnvVars("ASTRODASH_SESSION_COOKIE_KEY"),
		},
		&cli.BoolFlag{
			Name:        "session-secure-cookie",
			Usage:       "Set the Secure attribute on the session cookie",
			Category:    "Session",
			Value:       true,
			Destination: &x.secureCookie,
			Sources:     cli.EnvVars("ASTRODASH_SESSION_SECURE_COOKIE"),
		},
		&cli.StringFlag{
			Name:        "dashboard-url",
			Usage:       "Where to send the browser after OAuth sign-in",
			Category:    "Session",
			Value:       "/",
			Destination: &x.dashboardURL,
			Sources:     cli.EnvVars("ASTRODASH_DASHBOARD_URL"),
		},
	}
	return append(flags, x.Firestore.Flags()...)
}

func (x *Session) TTL() time.Duration   { return x.ttl }
func (x *Session) CookieKey() []byte    { return []byte(x.cookieKey) }
func (x *Session) SecureCookie() bool   { return x.secureCookie }
func (x *Session) DashboardURL() string { return x.dashboardURL }

// NewRepository opens the configured session store. The returned close function is never nil.
func (x *Session) NewRepository(ctx context.Context) (interfaces.SessionRepository, func() error, error) {
	noop := func() error { return nil }

	switch x.store {
	case StoreMemory, "":
		return memory.New(), noop, nil

	case StoreSQLite:
		repo, err := sqlite.New(x.sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case StoreFirestore:
		if !x.Firestore.Enabled() {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "firestore session store requires --firestore-project-id")
		}
		repo, err := x.Firestore.NewRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil
	}

	return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unknown session store", goerr.V("store", x.store))
}

func (x Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Store", x.store),
		slog.String("SQLitePath", x.sqlitePath),
		slog.Duration("TTL", x.ttl),
		slog.Int("CookieKey.len", len(x.cookieKey)),
		slog.Bool("SecureCookie", x.secureCookie),
		slog.String("DashboardURL", x.dashboardURL),
		slog.Any("Firestore", &x.Firestore),
	)
}
