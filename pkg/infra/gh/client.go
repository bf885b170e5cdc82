// Package gh talks to the GitHub REST API on behalf of a signed-in user.
package gh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

type Factory struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ interfaces.GitHub = (*Factory)(nil)

type Option func(*Factory)

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise or a test server.
func WithBaseURL(base string) Option {
	return func(x *Factory) {
		u, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
		if err == nil {
			x.baseURL = u
		}
	}
}

// WithHTTPClient sets the transport wrapped by the token source.
func WithHTTPClient(client *http.Client) Option {
	return func(x *Factory) {
		x.httpClient = client
	}
}

func New(options ...Option) *Factory {
	f := &Factory{}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (x *Factory) NewClient(token types.GitHubToken) interfaces.GitHubClient {
	ctx := context.Background()
	if x.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, x.httpClient)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)})
	client := github.NewClient(oauth2.NewClient(ctx, src))
	if x.baseURL != nil {
		client.BaseURL = x.baseURL
	}
	return &Client{client: client}
}

// Client implements interfaces.GitHubClient with one user's token.
type Client struct {
	client *github.Client
}

var _ interfaces.GitHubClient = (*Client)(nil)

// wrapError maps GitHub API failures to domain sentinels.
func wrapError(err error, msg string, values ...goerr.Option) error {
	values = append(values, goerr.V("cause", err.Error()))

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return goerr.Wrap(types.ErrUpstream, msg+": rate limited", values...)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		values = append(values, goerr.V("status", respErr.Response.StatusCode))
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return goerr.Wrap(types.ErrNotFound, msg, values...)
		case http.StatusUnauthorized:
			return goerr.Wrap(types.ErrUnauthorized, msg, values...)
		case http.StatusForbidden:
			return goerr.Wrap(types.ErrForbidden, msg, values...)
		case http.StatusConflict:
			return goerr.Wrap(types.ErrConflict, msg, values...)
		case http.StatusUnprocessableEntity:
			return goerr.Wrap(types.ErrValidationFailed, msg, values...)
		}
	}

	return goerr.Wrap(types.ErrUpstream, msg, values...)
}

func statusOf(err error) int {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode
	}
	return 0
}

func (x *Client) GetAuthenticatedUser(ctx context.Context) (*model.AuthenticatedUser, error) {
	user, resp, err := x.client.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapError(err, "failed to get authenticated user")
	}

	result := &model.AuthenticatedUser{
		GitHubUser: model.GitHubUser{
			ID:        user.GetID(),
			Login:     user.GetLogin(),
			Name:      user.GetName(),
			AvatarURL: user.GetAvatarURL(),
		},
	}

	// Fine-grained tokens do not send the header at all.
	if resp != nil && resp.Response != nil {
		if values, ok := resp.Header[http.CanonicalHeaderKey("X-OAuth-Scopes")]; ok {
			result.Scopes = parseScopes(strings.Join(values, ","))
		}
	}

	return result, nil
}

func parseScopes(header string) []string {
	scopes := []string{}
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

func toRepository(repo *github.Repository) *model.GitHubRepository {
	return &model.GitHubRepository{
		RepoRef: model.RepoRef{
			Owner: repo.GetOwner().GetLogin(),
			Name:  repo.GetName(),
		},
		ID:            repo.GetID(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		DefaultBranch: types.BranchName(repo.GetDefaultBranch()),
		Private:       repo.GetPrivate(),
		IsTemplate:    repo.GetIsTemplate(),
		CanPush:       repo.GetPermissions()["push"],
		HTMLURL:       repo.GetHTMLURL(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
	}
}

func (x *Client) ListRepositories(ctx context.Context) ([]*model.GitHubRepository, error) {
	var all []*model.GitHubRepository
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		Affiliation: "owner,collaborator,organization_member",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		repos, resp, err := x.client.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, wrapError(err, "failed to list repositories")
		}

		for _, repo := range repos {
			if repo.GetArchived() || repo.GetDisabled() {
				continue
			}
			all = append(all, toRepository(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Debug("Listed repositories", slog.Int("count", len(all)))
	return all, nil
}

func (x *Client) GetRepository(ctx context.Context, repo model.RepoRef) (*model.GitHubRepository, error) {
	r, _, err := x.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, wrapError(err, "failed to get repository", goerr.V("repo", repo.FullName()))
	}
	return toRepository(r), nil
}

func (x *Client) CreateFromTemplate(ctx context.Context, input *model.CreateFromTemplateInput) (*model.GitHubRepository, error) {
	req := &github.TemplateRepoRequest{
		Name:               github.String(input.Name),
		Description:        github.String(input.Description),
		Private:            github.Bool(input.Private),
		IncludeAllBranches: github.Bool(false),
	}
	if input.Owner != "" {
		req.Owner = github.String(input.Owner)
	}

	r, _, err := x.client.Repositories.CreateFromTemplate(ctx, input.Template.Owner, input.Template.Name, req)
	if err != nil {
		if statusOf(err) == http.StatusUnprocessableEntity {
			return nil, goerr.Wrap(types.ErrConflict, "repository could not be created",
				goerr.V("name", input.Name), goerr.V("cause", err.Error()))
		}
		return nil, wrapError(err, "failed to create repository from template",
			goerr.V("template", input.Template.FullName()), goerr.V("name", input.Name))
	}

	return toRepository(r), nil
}

func (x *Client) ListBranches(ctx context.Context, repo model.RepoRef) ([]types.BranchName, error) {
	var names []types.BranchName
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: 100}}

	for {
		branches, resp, err := x.client.Repositories.ListBranches(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, wrapError(err, "failed to list branches", goerr.V("repo", repo.FullName()))
		}
		for _, b := range branches {
			names = append(names, types.BranchName(b.GetName()))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

func (x *Client) GetBranchHead(ctx context.Context, repo model.RepoRef, branch types.BranchName) (types.CommitSHA, error) {
	ref, _, err := x.client.Git.GetRef(ctx, repo.Owner, repo.Name, "heads/"+string(branch))
	if err != nil {
		return "", wrapError(err, "failed to get branch ref", goerr.V("repo", repo.FullName()), goerr.V("branch", branch))
	}
	return types.CommitSHA(ref.GetObject().GetSHA()), nil
}

func (x *Client) CreateBranch(ctx context.Context, repo model.RepoRef, branch types.BranchName, from types.CommitSHA) error {
	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + string(branch)),
		Object: &github.GitObject{SHA: github.String(string(from))},
	}
	if _, _, err := x.client.Git.CreateRef(ctx, repo.Owner, repo.Name, ref); err != nil {
		if statusOf(err) == http.StatusUnprocessableEntity {
			return goerr.Wrap(types.ErrConflict, "branch already exists",
				goerr.V("repo", repo.FullName()), goerr.V("branch", branch), goerr.V("cause", err.Error()))
		}
		return wrapError(err, "failed to create branch", goerr.V("repo", repo.FullName()), goerr.V("branch", branch))
	}

	logging.From(ctx).Info("Created branch",
		slog.String("repo", repo.FullName()),
		slog.Any("branch", branch),
		slog.Any("from", from),
	)
	return nil
}

func (x *Client) ListFiles(ctx context.Context, repo model.RepoRef, branch types.BranchName) ([]*model.FileEntry, bool, error) {
	tree, _, err := x.client.Git.GetTree(ctx, repo.Owner, repo.Name, string(branch), true)
	if err != nil {
		return nil, false, wrapError(err, "failed to get tree", goerr.V("repo", repo.FullName()), goerr.V("branch", branch))
	}

	files := make([]*model.FileEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		if e.GetType() != "blob" {
			continue
		}
		files = append(files, &model.FileEntry{
			Path: e.GetPath(),
			SHA:  types.BlobSHA(e.GetSHA()),
			Size: int64(e.GetSize()),
		})
	}

	return files, tree.GetTruncated(), nil
}

func (x *Client) GetContent(ctx context.Context, repo model.RepoRef, branch types.BranchName, path string) (*model.Content, error) {
	opts := &github.RepositoryContentGetOptions{Ref: string(branch)}
	file, dir, _, err := x.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return nil, wrapError(err, "failed to get content",
			goerr.V("repo", repo.FullName()), goerr.V("branch", branch), goerr.V("path", path))
	}
	if file == nil || dir != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "path is a directory", goerr.V("path", path))
	}

	content := &model.Content{
		Path: file.GetPath(),
		SHA:  types.BlobSHA(file.GetSHA()),
		Size: file.GetSize(),
	}

	// Files above 1MB come back without inline content.
	if file.GetEncoding() == "none" || (file.Content == nil && file.GetSize() > 0) {
		raw, err := x.GetBlob(ctx, repo, content.SHA)
		if err != nil {
			return nil, err
		}
		content.Content = string(raw)
		return content, nil
	}

	decoded, err := file.GetContent()
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "failed to decode content", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	content.Content = decoded
	return content, nil
}

func (x *Client) GetBlob(ctx context.Context, repo model.RepoRef, sha types.BlobSHA) ([]byte, error) {
	raw, _, err := x.client.Git.GetBlobRaw(ctx, repo.Owner, repo.Name, string(sha))
	if err != nil {
		return nil, wrapError(err, "failed to get blob", goerr.V("repo", repo.FullName()), goerr.V("sha", sha))
	}
	return raw, nil
}

func (x *Client) PutFile(ctx context.Context, repo model.RepoRef, input *model.PutFileInput) (*model.WriteResult, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(input.Message),
		Content: input.Content,
		Branch:  github.String(string(input.Branch)),
	}

	var (
		res *github.RepositoryContentResponse
		err error
	)
	if input.SHA != nil {
		opts.SHA = github.String(string(*input.SHA))
		res, _, err = x.client.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, input.Path, opts)
	} else {
		res, _, err = x.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, input.Path, opts)
	}
	if err != nil {
		vals := []goerr.Option{goerr.V("repo", repo.FullName()), goerr.V("branch", input.Branch), goerr.V("path", input.Path)}
		// 409 is a sha mismatch; 422 on a create means the file exists. Other 422s are invalid input.
		if s := statusOf(err); s == http.StatusConflict || (s == http.StatusUnprocessableEntity && input.SHA == nil) {
			return nil, goerr.Wrap(types.ErrConflict, "file changed since it was read", append(vals, goerr.V("cause", err.Error()))...)
		}
		return nil, wrapError(err, "failed to write file", vals...)
	}

	return &model.WriteResult{
		Path:      input.Path,
		SHA:       types.BlobSHA(res.GetContent().GetSHA()),
		CommitSHA: types.CommitSHA(res.Commit.GetSHA()),
	}, nil
}

func (x *Client) DeleteFile(ctx context.Context, repo model.RepoRef, input *model.DeleteFileInput) (*model.WriteResult, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(input.Message),
		SHA:     github.String(string(input.SHA)),
		Branch:  github.String(string(input.Branch)),
	}

	res, _, err := x.client.Repositories.DeleteFile(ctx, repo.Owner, repo.Name, input.Path, opts)
	if err != nil {
		vals := []goerr.Option{goerr.V("repo", repo.FullName()), goerr.V("branch", input.Branch), goerr.V("path", input.Path)}
		if s := statusOf(err); s == http.StatusConflict || s == http.StatusUnprocessableEntity {
			return nil, goerr.Wrap(types.ErrConflict, "file changed since it was read", append(vals, goerr.V("cause", err.Error()))...)
		}
		return nil, wrapError(err, "failed to delete file", vals...)
	}

	return &model.WriteResult{
		Path:      input.Path,
		CommitSHA: types.CommitSHA(res.Commit.GetSHA()),
	}, nil
}
