package config

import (
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/gh"
	"github.com/m-mizutani/astrodash/pkg/infra/oauth"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	apiURL        string
	clientID      types.GitHubOAuthClientID
	clientSecret  types.GitHubOAuthClientSecret `masq:"secret"`
	redirectURL   string
	webhookSecret types.GitHubWebhookSecret `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Category:    "GitHub",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("ASTRODASH_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-oauth-client-id",
			Usage:       "GitHub OAuth App client ID (optional, enables OAuth sign-in)",
			Category:    "GitHub",
			Destination: (*string)(&x.clientID),
			Sources:     cli.EnvVars("ASTRODASH_GITHUB_OAUTH_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "github-oauth-client-secret",
			Usage:       "GitHub OAuth App client secret",
			Category:    "GitHub",
			Destination: (*string)(&x.clientSecret),
			Sources:     cli.EnvVars("ASTRODASH_GITHUB_OAUTH_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-oauth-redirect-url",
			Usage:       "OAuth callback URL, e.g. https://dash.example.com/api/auth/callback",
			Category:    "GitHub",
			Destination: &x.redirectURL,
			Sources:     cli.EnvVars("ASTRODASH_GITHUB_OAUTH_REDIRECT_URL"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "Secret of the push webhook",
			Category:    "GitHub",
			Destination: (*string)(&x.webhookSecret),
			Sources:     cli.EnvVars("ASTRODASH_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

func (x *GitHub) NewFactory() *gh.Factory {
	var options []gh.Option
	if x.apiURL != "" {
		options = append(options, gh.WithBaseURL(x.apiURL))
	}
	return gh.New(options...)
}

// NewOAuth returns nil when OAuth sign-in is not configured.
func (x *GitHub) NewOAuth() (interfaces.OAuth, error) {
	if x.clientID == "" {
		return nil, nil
	}
	client, err := oauth.New(x.clientID, x.clientSecret, x.redirectURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *GitHub) WebhookSecret() types.GitHubWebhookSecret {
	return x.webhookSecret
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("APIURL", x.apiURL),
		slog.String("ClientID", string(x.clientID)),
		slog.Int("ClientSecret.len", len(x.clientSecret)),
		slog.String("RedirectURL", x.redirectURL),
		slog.Int("WebhookSecret.len", len(x.webhookSecret)),
	)
}
