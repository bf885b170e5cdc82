package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/cli/config"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

// parse runs a command with flags so the config receives values the way the CLI does.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestLayoutLoad(t *testing.T) {
	t.Run("default layout", func(t *testing.T) {
		var layout config.Layout
		parse(t, layout.Flags())
		got := gt.R1(layout.Load()).NoError(t)
		gt.V(t, got.PostsDir).Equal(model.DefaultSiteLayout().PostsDir)
	})

	t.Run("toml overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
posts_dir = "content/posts"
image_dirs = ["static"]
optimize_min_size = 1024
`), 0644))

		var layout config.Layout
		parse(t, layout.Flags(), "--layout", path, "--template-branch", "template")
		got := gt.R1(layout.Load()).NoError(t)
		gt.V(t, got.PostsDir).Equal("content/posts")
		gt.V(t, got.PagesDir).Equal(model.DefaultSiteLayout().PagesDir)
		gt.V(t, got.ImageDirs).Equal([]string{"static"})
		gt.V(t, got.OptimizeMinSize).Equal(int64(1024))
		gt.V(t, got.TemplateBranch).Equal("template")
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`post_dir = "typo"`), 0644))

		var layout config.Layout
		parse(t, layout.Flags(), "--layout", path)
		_, err := layout.Load()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("invalid directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`posts_dir = "/abs"`), 0644))

		var layout config.Layout
		parse(t, layout.Flags(), "--layout", path)
		_, err := layout.Load()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestSessionRepository(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		var session config.Session
		parse(t, session.Flags())
		repo, closeFn, err := session.NewRepository(context.Background())
		gt.NoError(t, err)
		gt.V(t, repo).NotEqual(nil)
		gt.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		var session config.Session
		path := filepath.Join(t.TempDir(), "sessions.db")
		parse(t, session.Flags(), "--session-store", "sqlite", "--session-sqlite-path", path)
		repo, closeFn, err := session.NewRepository(context.Background())
		gt.NoError(t, err)
		gt.V(t, repo).NotEqual(nil)
		gt.NoError(t, closeFn())
	})

	t.Run("firestore without project", func(t *testing.T) {
		var session config.Session
		parse(t, session.Flags(), "--session-store", "firestore")
		_, _, err := session.NewRepository(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("unknown store", func(t *testing.T) {
		var session config.Session
		parse(t, session.Flags(), "--session-store", "redis")
		_, _, err := session.NewRepository(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestOptionalClients(t *testing.T) {
	ctx := context.Background()

	var github config.GitHub
	parse(t, github.Flags())
	oauth, err := github.NewOAuth()
	gt.NoError(t, err)
	gt.True(t, oauth == nil)

	var vercel config.Vercel
	parse(t, vercel.Flags())
	v, err := vercel.NewClient()
	gt.NoError(t, err)
	gt.True(t, v == nil)

	var bq config.BigQuery
	parse(t, bq.Flags())
	audit, err := bq.NewClient(ctx)
	gt.NoError(t, err)
	gt.True(t, audit == nil)

	var storage config.CloudStorage
	parse(t, storage.Flags())
	objects, err := storage.NewClient(ctx)
	gt.NoError(t, err)
	gt.True(t, objects == nil)

	var google config.Google
	parse(t, google.Flags())
	ps, err := google.NewPageSpeed(ctx)
	gt.NoError(t, err)
	gt.True(t, ps == nil)
}

func TestGitHubOAuthConfigured(t *testing.T) {
	var github config.GitHub
	parse(t, github.Flags(),
		"--github-oauth-client-id", "client",
		"--github-oauth-client-secret", "secret",
		"--github-oauth-redirect-url", "https://dash.example.com/api/auth/callback",
	)
	oauth := gt.R1(github.NewOAuth()).NoError(t)
	gt.S(t, oauth.AuthCodeURL("xyz")).Contains("state=xyz")

	var missingSecret config.GitHub
	parse(t, missingSecret.Flags(), "--github-oauth-client-id", "client")
	_, err := missingSecret.NewOAuth()
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
