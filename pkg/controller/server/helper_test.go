package server_test

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/controller/server"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/mock"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/repository/memory"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const (
	validToken   = "ghp_valid"
	noScopeToken = "ghp_noscope"
	webhookKey   = "webhook-secret"
)

// fakeRepo is the single repository octo/blog with one branch, main.
type fakeRepo struct {
	mu    sync.Mutex
	files map[string][]byte
}

func blobSHA(data []byte) types.BlobSHA {
	sum := sha1.Sum(data)
	return types.BlobSHA(hex.EncodeToString(sum[:]))
}

func (f *fakeRepo) client(token types.GitHubToken) interfaces.GitHubClient {
	isBlog := func(ref model.RepoRef) bool { return ref.FullName() == "octo/blog" }

	return &mock.GitHubClientMock{
		GetAuthenticatedUserFunc: func(ctx context.Context) (*model.AuthenticatedUser, error) {
			switch string(token) {
			case validToken:
				return &model.AuthenticatedUser{GitHubUser: model.GitHubUser{ID: 1, Login: "octocat"}, Scopes: []string{"repo"}}, nil
			case noScopeToken:
				return &model.AuthenticatedUser{GitHubUser: model.GitHubUser{ID: 2, Login: "reader"}, Scopes: []string{"read:user"}}, nil
			}
			return nil, goerr.Wrap(types.ErrUnauthorized, "bad credentials")
		},
		GetRepositoryFunc: func(ctx context.Context, repo model.RepoRef) (*model.GitHubRepository, error) {
			if !isBlog(repo) {
				return nil, goerr.Wrap(types.ErrNotFound, "repository not found")
			}
			return &model.GitHubRepository{RepoRef: repo, ID: 42, FullName: "octo/blog", DefaultBranch: "main", CanPush: true}, nil
		},
		GetBranchHeadFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName) (types.CommitSHA, error) {
			if !isBlog(repo) || branch != "main" {
				return "", goerr.Wrap(types.ErrNotFound, "branch not found")
			}
			return "c0", nil
		},
		ListFilesFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName) ([]*model.FileEntry, bool, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			var files []*model.FileEntry
			for p, data := range f.files {
				files = append(files, &model.FileEntry{Path: p, SHA: blobSHA(data), Size: int64(len(data))})
			}
			return files, false, nil
		},
		GetContentFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName, path string) (*model.Content, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			data, ok := f.files[path]
			if !ok {
				return nil, goerr.Wrap(types.ErrNotFound, "file not found", goerr.V("path", path))
			}
			return &model.Content{Path: path, Content: string(data), SHA: blobSHA(data), Size: len(data)}, nil
		},
		PutFileFunc: func(ctx context.Context, repo model.RepoRef, input *model.PutFileInput) (*model.WriteResult, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if cur, ok := f.files[input.Path]; ok && (input.SHA == nil || *input.SHA != blobSHA(cur)) {
				return nil, goerr.Wrap(types.ErrConflict, "sha does not match")
			}
			f.files[input.Path] = input.Content
			return &model.WriteResult{Path: input.Path, SHA: blobSHA(input.Content), CommitSHA: "c1"}, nil
		},
	}
}

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
	uc     *usecase.UseCase
	repo   *fakeRepo
}

func newTestEnv(t *testing.T, clientOpts []infra.Option, serverOpts ...server.Option) *testEnv {
	t.Helper()

	repo := &fakeRepo{files: map[string][]byte{
		"src/content/blog/hello.md": []byte("---\ntitle: Hello\n---\nbody\n"),
	}}

	opts := append([]infra.Option{
		infra.WithGitHub(&mock.GitHubMock{NewClientFunc: repo.client}),
		infra.WithSessionRepository(memory.New()),
	}, clientOpts...)
	uc := usecase.New(infra.New(opts...))

	serverOpts = append([]server.Option{
		server.WithCookieKey([]byte("0123456789abcdef0123456789abcdef")),
		server.WithWebhookSecret(webhookKey),
	}, serverOpts...)
	srv := httptest.NewServer(server.New(uc, serverOpts...).Mux())
	t.Cleanup(srv.Close)

	jar := gt.R1(cookiejar.New(nil)).NoError(t)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{srv: srv, client: client, uc: uc, repo: repo}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(gt.R1(json.Marshal(body)).NoError(t))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := gt.R1(http.NewRequest(method, e.srv.URL+path, reader)).NoError(t)
	req.Header.Set("Content-Type", "application/json")
	resp := gt.R1(e.client.Do(req)).NoError(t)
	defer resp.Body.Close()

	var env envelope
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, &env
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	code, env := e.do(t, http.MethodPost, "/api/auth/token", map[string]string{"token": validToken})
	gt.V(t, code).Equal(http.StatusOK)
	gt.True(t, env.Success)
}

func (e *testEnv) connect(t *testing.T) {
	t.Helper()
	e.login(t)
	code, _ := e.do(t, http.MethodPost, "/api/repository/connect", map[string]string{"identifier": "octo/blog"})
	gt.V(t, code).Equal(http.StatusOK)
}

func decodeData[T any](t *testing.T, env *envelope) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}
