package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

type Server struct {
	mux     *chi.Mux
	uc      interfaces.UseCase
	cfg     *config
	cookies *cookieJar
}

type config struct {
	webhookSecret types.GitHubWebhookSecret
	cookieKey     []byte
	secureCookie  bool
	sessionTTL    time.Duration
	dashboardURL  string
}

type Option func(*config)

func WithWebhookSecret(secret types.GitHubWebhookSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

// WithCookieKey sets the HMAC key signing the session cookie. A random key is used when unset.
func WithCookieKey(key []byte) Option {
	return func(cfg *config) {
		cfg.cookieKey = key
	}
}

func WithSecureCookie(secure bool) Option {
	return func(cfg *config) {
		cfg.secureCookie = secure
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(cfg *config) {
		cfg.sessionTTL = ttl
	}
}

// WithDashboardURL sets where the OAuth callback redirects after sign-in.
func WithDashboardURL(url string) Option {
	return func(cfg *config) {
		cfg.dashboardURL = url
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		sessionTTL:   7 * 24 * time.Hour,
		dashboardURL: "/",
	}
	for _, opt := range options {
		opt(cfg)
	}

	x := &Server{
		uc:      uc,
		cfg:     cfg,
		cookies: newCookieJar(cfg.cookieKey, cfg.secureCookie, cfg.sessionTTL),
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Post("/webhook/github", x.handleGitHubWebhook)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", x.handleOAuthLogin)
			r.Get("/callback", x.handleOAuthCallback)
			r.Post("/token", x.handleTokenLogin)
			r.Post("/logout", x.handleLogout)
			r.With(x.authenticate).Get("/me", x.handleMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(x.authenticate)

			r.Get("/events", x.handleEvents)

			r.Get("/repository", handle(x.getRepository))
			r.Post("/repository", handle(withBody(x.connectRepository)))
			r.Post("/repository/connect", handle(withBody(x.connectRepository)))
			r.Post("/repository/disconnect", handle(x.disconnectRepository))
			r.Post("/repository/sync", handle(x.syncRepository))
			r.Get("/github/repos", handle(x.listGitHubRepositories))

			r.Get("/branches", handle(x.listBranches))
			r.Post("/branches", handle(withBody(x.createBranch)))
			r.Post("/branches/switch", handle(withBody(x.switchBranch)))

			r.Get("/files", handle(x.listFiles))
			r.Get("/files/content", handle(x.readContent))
			r.Put("/files/content", handle(withBody(x.writeContent)))
			r.Delete("/files/content", handle(x.deleteContent))

			r.Route("/posts", x.entryRoutes(model.CollectionPosts))
			r.Route("/pages", x.entryRoutes(model.CollectionPages))

			settingsRoutes(r, "/branding", uc.GetBranding, uc.PutBranding)
			settingsRoutes(r, "/navigation", uc.GetNavigation, uc.PutNavigation)
			settingsRoutes(r, "/theme", uc.GetTheme, uc.PutTheme)
			settingsRoutes(r, "/adsense", uc.GetAdSense, uc.PutAdSense)
			settingsRoutes(r, "/content-defaults", uc.GetContentDefaults, uc.PutContentDefaults)

			r.Get("/performance/analyze", handle(x.analyzePerformance))
			r.Post("/performance/cleanup", handle(withBody(x.cleanupPerformance)))

			r.Get("/changes", handle(x.listPending))
			r.Delete("/changes", handle(x.discardPending))
			r.Post("/changes/commit", handle(x.commitPending))

			r.Post("/clone-repo", handle(withBody(x.cloneRepository)))
			r.Post("/deploy", handle(x.deploy))
			r.Post("/pagespeed/analyze", handle(withBody(x.analyzePageSpeed)))
			r.Get("/search-console/performance", handle(x.searchPerformance))
		})
	})

	x.mux = r
	return x
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
