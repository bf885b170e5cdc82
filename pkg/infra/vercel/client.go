// Package vercel is a small client of the Vercel REST API covering project linking, domains and
// deployments.
package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/astrodash/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const defaultBaseURL = "https://api.vercel.com"

type Client struct {
	token      types.VercelToken
	teamID     string
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.Vercel = (*Client)(nil)

type Option func(*Client)

func WithTeamID(teamID string) Option {
	return func(x *Client) {
		x.teamID = teamID
	}
}

func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func New(token types.VercelToken, options ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "Vercel token is empty")
	}

	client := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (x *Client) do(ctx context.Context, method, path string, body, out any) error {
	u, err := url.Parse(x.baseURL + path)
	if err != nil {
		return goerr.Wrap(err, "invalid Vercel URL", goerr.V("path", path))
	}
	if x.teamID != "" {
		q := u.Query()
		q.Set("teamId", x.teamID)
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode Vercel request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return goerr.Wrap(err, "failed to create Vercel request")
	}
	req.Header.Set("Authorization", "Bearer "+string(x.token))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrUpstream, "failed to call Vercel", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode >= 400 {
		var apiErr apiError
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &apiErr)

		vals := []goerr.Option{
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("code", apiErr.Error.Code),
		}
		msg := "Vercel API error"
		if apiErr.Error.Message != "" {
			msg = "Vercel: " + apiErr.Error.Message
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return goerr.Wrap(types.ErrUnauthorized, msg, vals...)
		case http.StatusForbidden:
			return goerr.Wrap(types.ErrForbidden, msg, vals...)
		case http.StatusNotFound:
			return goerr.Wrap(types.ErrNotFound, msg, vals...)
		case http.StatusConflict:
			return goerr.Wrap(types.ErrConflict, msg, vals...)
		case http.StatusBadRequest:
			return goerr.Wrap(types.ErrValidationFailed, msg, vals...)
		}
		return goerr.Wrap(types.ErrUpstream, msg, vals...)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(types.ErrUpstream, "failed to decode Vercel response", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return nil
}

type projectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkProject creates a Vercel project bound to the GitHub repository. An existing project of the
// same name is reused.
func (x *Client) LinkProject(ctx context.Context, input *model.LinkProjectInput) (*model.VercelProject, error) {
	req := map[string]any{
		"name":      input.Name,
		"framework": "astro",
		"gitRepository": map[string]string{
			"type": "github",
			"repo": input.Repo.FullName(),
		},
	}

	var resp projectResponse
	err := x.do(ctx, http.MethodPost, "/v10/projects", req, &resp)
	if errors.Is(err, types.ErrConflict) {
		logging.From(ctx).Info("Vercel project exists, reusing", slog.String("name", input.Name))
		err = x.do(ctx, http.MethodGet, "/v9/projects/"+url.PathEscape(input.Name), nil, &resp)
	}
	if err != nil {
		return nil, err
	}

	return &model.VercelProject{ID: resp.ID, Name: resp.Name}, nil
}

func (x *Client) AddDomain(ctx context.Context, project, domain string) error {
	req := map[string]string{"name": domain}
	if err := x.do(ctx, http.MethodPost, "/v10/projects/"+url.PathEscape(project)+"/domains", req, nil); err != nil {
		return err
	}
	logging.From(ctx).Info("Added domain to Vercel project", slog.String("project", project), slog.String("domain", domain))
	return nil
}

type deploymentResponse struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	ReadyState string `json:"readyState"`
}

func (x *Client) CreateDeployment(ctx context.Context, input *model.CreateDeploymentInput) (*model.VercelDeployment, error) {
	req := map[string]any{
		"name":    input.Project,
		"project": input.Project,
		"gitSource": map[string]string{
			"type":   "github",
			"repoId": strconv.FormatInt(input.RepoID, 10),
			"ref":    string(input.Ref),
		},
	}

	var resp deploymentResponse
	if err := x.do(ctx, http.MethodPost, "/v13/deployments", req, &resp); err != nil {
		return nil, err
	}

	return &model.VercelDeployment{
		ID:     resp.ID,
		URL:    resp.URL,
		State:  resp.ReadyState,
		Branch: string(input.Ref),
	}, nil
}
