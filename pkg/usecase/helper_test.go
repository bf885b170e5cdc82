package usecase_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/mock"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/repository/memory"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const (
	testOwner = "octo"
	testRepo  = "blog"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return testNow })
}

func blobSHA(data []byte) types.BlobSHA {
	sum := sha1.Sum(data)
	return types.BlobSHA(hex.EncodeToString(sum[:]))
}

// fakeGitHub is an in-memory repository behind GitHubClientMock. It enforces blob shas the same
// way the Contents API does.
type fakeGitHub struct {
	mu       sync.Mutex
	branches map[types.BranchName]map[string][]byte
	heads    map[types.BranchName]types.CommitSHA
	canPush  bool
	scopes   []string
	commits  int
	client   *mock.GitHubClientMock
}

func newFakeGitHub(files map[string]string) *fakeGitHub {
	main := make(map[string][]byte, len(files))
	for p, c := range files {
		main[p] = []byte(c)
	}
	f := &fakeGitHub{
		branches: map[types.BranchName]map[string][]byte{"main": main},
		heads:    map[types.BranchName]types.CommitSHA{"main": "c0"},
		canPush:  true,
		scopes:   []string{"repo", "read:user"},
	}
	f.client = f.newClient()
	return f
}

func (f *fakeGitHub) file(branch types.BranchName, p string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.branches[branch][p]
	return data, ok
}

func (f *fakeGitHub) setFile(branch types.BranchName, p string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.branches[branch][p] = data
}

func (f *fakeGitHub) removeBranch(branch types.BranchName) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.branches, branch)
	delete(f.heads, branch)
}

func (f *fakeGitHub) commitLocked(branch types.BranchName) types.CommitSHA {
	f.commits++
	sha := types.CommitSHA(fmt.Sprintf("c%d", f.commits))
	f.heads[branch] = sha
	return sha
}

func (f *fakeGitHub) ghRepo(ref model.RepoRef) *model.GitHubRepository {
	return &model.GitHubRepository{
		RepoRef:       ref,
		ID:            42,
		FullName:      ref.FullName(),
		DefaultBranch: "main",
		CanPush:       f.canPush,
		HTMLURL:       "https://github.com/" + ref.FullName(),
	}
}

func (f *fakeGitHub) newClient() *mock.GitHubClientMock {
	notFound := func(msg string, opts ...goerr.Option) error {
		return goerr.Wrap(types.ErrNotFound, msg, opts...)
	}

	return &mock.GitHubClientMock{
		GetAuthenticatedUserFunc: func(ctx context.Context) (*model.AuthenticatedUser, error) {
			return &model.AuthenticatedUser{
				GitHubUser: model.GitHubUser{ID: 1, Login: "octocat", Name: "Octo Cat"},
				Scopes:     f.scopes,
			}, nil
		},
		ListRepositoriesFunc: func(ctx context.Context) ([]*model.GitHubRepository, error) {
			writable := f.ghRepo(model.RepoRef{Owner: testOwner, Name: testRepo})
			readonly := f.ghRepo(model.RepoRef{Owner: "other", Name: "docs"})
			readonly.CanPush = false
			return []*model.GitHubRepository{writable, readonly}, nil
		},
		GetRepositoryFunc: func(ctx context.Context, repo model.RepoRef) (*model.GitHubRepository, error) {
			if repo.FullName() != testOwner+"/"+testRepo {
				return nil, notFound("repository not found", goerr.V("repo", repo.FullName()))
			}
			return f.ghRepo(repo), nil
		},
		CreateFromTemplateFunc: func(ctx context.Context, input *model.CreateFromTemplateInput) (*model.GitHubRepository, error) {
			return f.ghRepo(model.RepoRef{Owner: input.Owner, Name: input.Name}), nil
		},
		ListBranchesFunc: func(ctx context.Context, repo model.RepoRef) ([]types.BranchName, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			var names []types.BranchName
			for name := range f.branches {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
			return names, nil
		},
		GetBranchHeadFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName) (types.CommitSHA, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			head, ok := f.heads[branch]
			if !ok {
				return "", notFound("branch not found", goerr.V("branch", branch))
			}
			return head, nil
		},
		CreateBranchFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName, from types.CommitSHA) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.branches[branch]; ok {
				return goerr.Wrap(types.ErrConflict, "reference already exists")
			}
			var source types.BranchName
			for name, head := range f.heads {
				if head == from {
					source = name
				}
			}
			files := make(map[string][]byte)
			for p, c := range f.branches[source] {
				files[p] = c
			}
			f.branches[branch] = files
			f.heads[branch] = from
			return nil
		},
		ListFilesFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName) ([]*model.FileEntry, bool, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			files, ok := f.branches[branch]
			if !ok {
				return nil, false, notFound("branch not found")
			}
			var entries []*model.FileEntry
			for p, c := range files {
				entries = append(entries, &model.FileEntry{Path: p, SHA: blobSHA(c), Size: int64(len(c))})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
			return entries, false, nil
		},
		GetContentFunc: func(ctx context.Context, repo model.RepoRef, branch types.BranchName, path string) (*model.Content, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			data, ok := f.branches[branch][path]
			if !ok {
				return nil, notFound("content not found", goerr.V("path", path))
			}
			return &model.Content{Path: path, Content: string(data), SHA: blobSHA(data), Size: len(data)}, nil
		},
		GetBlobFunc: func(ctx context.Context, repo model.RepoRef, sha types.BlobSHA) ([]byte, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, files := range f.branches {
				for _, c := range files {
					if blobSHA(c) == sha {
						return c, nil
					}
				}
			}
			return nil, notFound("blob not found")
		},
		PutFileFunc: func(ctx context.Context, repo model.RepoRef, input *model.PutFileInput) (*model.WriteResult, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			files, ok := f.branches[input.Branch]
			if !ok {
				return nil, notFound("branch not found")
			}
			current, exists := files[input.Path]
			switch {
			case exists && input.SHA == nil:
				return nil, goerr.Wrap(types.ErrConflict, "sha wasn't supplied")
			case exists && *input.SHA != blobSHA(current):
				return nil, goerr.Wrap(types.ErrConflict, "sha does not match")
			case !exists && input.SHA != nil:
				return nil, goerr.Wrap(types.ErrConflict, "file does not exist")
			}
			files[input.Path] = input.Content
			return &model.WriteResult{
				Path:      input.Path,
				SHA:       blobSHA(input.Content),
				CommitSHA: f.commitLocked(input.Branch),
			}, nil
		},
		DeleteFileFunc: func(ctx context.Context, repo model.RepoRef, input *model.DeleteFileInput) (*model.WriteResult, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			current, exists := f.branches[input.Branch][input.Path]
			if !exists {
				return nil, notFound("content not found")
			}
			if input.SHA != blobSHA(current) {
				return nil, goerr.Wrap(types.ErrConflict, "sha does not match")
			}
			delete(f.branches[input.Branch], input.Path)
			return &model.WriteResult{Path: input.Path, CommitSHA: f.commitLocked(input.Branch)}, nil
		},
	}
}

type testEnv struct {
	uc       *usecase.UseCase
	gh       *fakeGitHub
	sessions interfaces.SessionRepository
}

func newTestEnv(t *testing.T, gh *fakeGitHub, clientOpts []infra.Option, opts ...usecase.Option) *testEnv {
	t.Helper()
	sessions := memory.New()
	clients := infra.New(append([]infra.Option{
		infra.WithGitHub(&mock.GitHubMock{
			NewClientFunc: func(token types.GitHubToken) interfaces.GitHubClient {
				return gh.client
			},
		}),
		infra.WithSessionRepository(sessions),
	}, clientOpts...)...)

	return &testEnv{
		uc:       usecase.New(clients, opts...),
		gh:       gh,
		sessions: sessions,
	}
}

func (x *testEnv) login(t *testing.T) *model.Session {
	t.Helper()
	return gt.R1(x.uc.LoginWithToken(testContext(), "ghp_test")).NoError(t)
}

func (x *testEnv) connect(t *testing.T) *model.Session {
	t.Helper()
	sess := x.login(t)
	gt.R1(x.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{
		Identifier: testOwner + "/" + testRepo,
	})).NoError(t)
	return sess
}
