// Package oauth implements the GitHub OAuth web flow.
package oauth

import (
	"context"
	"errors"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// DefaultScopes lets the dashboard read and write repository contents and create repositories.
var DefaultScopes = []string{"repo", "read:user"}

type Client struct {
	config *oauth2.Config
}

var _ interfaces.OAuth = (*Client)(nil)

type Option func(*oauth2.Config)

func WithScopes(scopes ...string) Option {
	return func(c *oauth2.Config) {
		c.Scopes = scopes
	}
}

// WithEndpoint replaces the GitHub endpoint, used for GitHub Enterprise and tests.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(c *oauth2.Config) {
		c.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	}
}

func New(clientID types.GitHubOAuthClientID, secret types.GitHubOAuthClientSecret, redirectURL string, options ...Option) (*Client, error) {
	if clientID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "OAuth client ID is empty")
	}
	if secret == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "OAuth client secret is empty")
	}

	cfg := &oauth2.Config{
		ClientID:     string(clientID),
		ClientSecret: string(secret),
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       DefaultScopes,
	}
	for _, opt := range options {
		opt(cfg)
	}

	return &Client{config: cfg}, nil
}

func (x *Client) AuthCodeURL(state string) string {
	return x.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (x *Client) Exchange(ctx context.Context, code string) (types.GitHubToken, error) {
	if code == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "authorization code is empty")
	}

	token, err := x.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", goerr.Wrap(types.ErrUnauthorized, "GitHub rejected the authorization code",
				goerr.V("error_code", retrieveErr.ErrorCode))
		}
		return "", goerr.Wrap(types.ErrUpstream, "failed to exchange authorization code", goerr.V("cause", err.Error()))
	}
	if token.AccessToken == "" {
		return "", goerr.Wrap(types.ErrUnauthorized, "GitHub returned an empty token")
	}

	return types.GitHubToken(token.AccessToken), nil
}
