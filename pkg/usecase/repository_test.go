package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/mock"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestConnectRepository(t *testing.T) {
	for _, identifier := range []string{
		"octo/blog",
		"https://github.com/octo/blog",
		"https://github.com/octo/blog.git",
		"https://github.com/octo/blog/tree/main/src",
		"git@github.com:octo/blog.git",
	} {
		t.Run(identifier, func(t *testing.T) {
			env := newTestEnv(t, newFakeGitHub(nil), nil)
			sess := env.login(t)

			result := gt.R1(env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{
				Identifier: identifier,
			})).NoError(t)
			gt.V(t, result.Repository.FullName).Equal("octo/blog")
			gt.V(t, result.Repository.ActiveBranch).Equal(types.BranchName("main"))
			gt.V(t, result.Repository.TemplateBranch).Equal(types.BranchName("main"))
			gt.V(t, result.Repository.LastSynced).Equal(testNow)

			stored := gt.R1(env.sessions.GetSession(testContext(), sess.ID)).NoError(t)
			gt.V(t, stored.ActiveRepository.FullName).Equal("octo/blog")
		})
	}

	t.Run("malformed identifier fails before calling GitHub", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		env := newTestEnv(t, gh, nil)
		sess := env.login(t)

		for _, identifier := range []string{"", "octo", "-octo/blog", "octo/..", "https://gitlab.com/octo/blog"} {
			_, err := env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{Identifier: identifier})
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		}
		gt.A(t, gh.client.GetRepositoryCalls()).Length(0)
	})

	t.Run("unknown repository", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.login(t)

		_, err := env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{Identifier: "octo/missing"})
		gt.True(t, errors.Is(err, types.ErrNotFound))
		gt.V(t, sess.ActiveRepository == nil).Equal(true)
	})

	t.Run("read-only repository is forbidden", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		gh.canPush = false
		env := newTestEnv(t, gh, nil)
		sess := env.login(t)

		_, err := env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{Identifier: "octo/blog"})
		gt.True(t, errors.Is(err, types.ErrForbidden))
	})

	t.Run("configured template branch is used when it exists", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		gh.branches["template"] = map[string][]byte{}
		gh.heads["template"] = "t0"
		env := newTestEnv(t, gh, nil, usecase.WithTemplateBranch("template"))
		sess := env.connect(t)

		gt.V(t, sess.ActiveRepository.TemplateBranch).Equal(types.BranchName("template"))
		gt.V(t, sess.ActiveRepository.ActiveBranch).Equal(types.BranchName("template"))
	})

	t.Run("missing template branch falls back to default branch", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil, usecase.WithTemplateBranch("template"))
		sess := env.connect(t)

		gt.V(t, sess.ActiveRepository.TemplateBranch).Equal(types.BranchName("main"))
	})

	t.Run("deployment linkage without Vercel is a warning", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.login(t)

		result := gt.R1(env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{
			Identifier:     "octo/blog",
			LinkDeployment: true,
		})).NoError(t)
		gt.A(t, result.Warnings).Length(1)
		gt.V(t, result.Repository.FullName).Equal("octo/blog")
	})

	t.Run("deployment linkage failure does not fail connect", func(t *testing.T) {
		vercel := &mock.VercelMock{
			LinkProjectFunc: func(ctx context.Context, input *model.LinkProjectInput) (*model.VercelProject, error) {
				gt.V(t, input.Repo.FullName()).Equal("octo/blog")
				return nil, types.ErrUpstream
			},
		}
		env := newTestEnv(t, newFakeGitHub(nil), []infra.Option{infra.WithVercel(vercel)})
		sess := env.login(t)

		result := gt.R1(env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{
			Identifier:     "octo/blog",
			LinkDeployment: true,
		})).NoError(t)
		gt.A(t, result.Warnings).Length(1)
		gt.A(t, vercel.LinkProjectCalls()).Length(1)
		gt.V(t, sess.ActiveRepository.FullName).Equal("octo/blog")
	})

	t.Run("connect clears queued changes", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.login(t)
		sess.Pending = []*model.PendingChange{{Path: "public/a.png", Op: model.PendingDelete}}

		gt.R1(env.uc.ConnectRepository(testContext(), sess, &model.ConnectRepositoryInput{Identifier: "octo/blog"})).NoError(t)
		gt.A(t, sess.Pending).Length(0)
	})
}

func TestDisconnectRepository(t *testing.T) {
	gh := newFakeGitHub(map[string]string{"README.md": "hello"})
	env := newTestEnv(t, gh, nil)
	ctx := testContext()
	sess := env.connect(t)
	sess.Pending = []*model.PendingChange{{Path: "public/a.png", Op: model.PendingDelete, Branch: "main"}}

	gt.NoError(t, env.uc.DisconnectRepository(ctx, sess))
	gt.V(t, sess.ActiveRepository == nil).Equal(true)
	gt.A(t, sess.Pending).Length(0)

	stored := gt.R1(env.sessions.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, stored.ActiveRepository == nil).Equal(true)

	// remote data is untouched
	data, ok := gh.file("main", "README.md")
	gt.V(t, ok).Equal(true)
	gt.V(t, string(data)).Equal("hello")

	_, err := env.uc.ReadContent(ctx, sess, "README.md")
	gt.True(t, errors.Is(err, types.ErrNoActiveRepository))
}

func TestSyncRepository(t *testing.T) {
	t.Run("vanished active branch falls back to template", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		env := newTestEnv(t, gh, nil)
		ctx := testContext()
		sess := env.connect(t)

		gt.R1(env.uc.CreateBranch(ctx, sess, &model.CreateBranchInput{Domain: "example.com"})).NoError(t)
		gt.V(t, sess.ActiveRepository.ActiveBranch).Equal(types.BranchName("site-example-com"))

		gh.removeBranch("site-example-com")
		repo := gt.R1(env.uc.SyncRepository(ctx, sess)).NoError(t)
		gt.V(t, repo.ActiveBranch).Equal(types.BranchName("main"))
	})

	t.Run("requires a connected repository", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.login(t)

		_, err := env.uc.SyncRepository(testContext(), sess)
		gt.True(t, errors.Is(err, types.ErrNoActiveRepository))
	})
}

func TestListGitHubRepositories(t *testing.T) {
	gh := newFakeGitHub(nil)
	env := newTestEnv(t, gh, nil)
	sess := env.login(t)

	repos := gt.R1(env.uc.ListGitHubRepositories(testContext(), sess)).NoError(t)
	gt.A(t, repos).Length(1)
	gt.V(t, repos[0].FullName).Equal("octo/blog")

	gt.R1(env.uc.ListGitHubRepositories(testContext(), sess)).NoError(t)
	gt.A(t, gh.client.ListRepositoriesCalls()).Length(1)
}
