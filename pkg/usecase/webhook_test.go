package usecase_test

import (
	"slices"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestHandlePush(t *testing.T) {
	gh := newFakeGitHub(map[string]string{"README.md": "v1"})
	env := newTestEnv(t, gh, nil)
	ctx := testContext()
	sess := env.connect(t)

	gt.V(t, gt.R1(env.uc.ReadContent(ctx, sess, "README.md")).NoError(t).Content).Equal("v1")

	events, cancel := env.uc.SubscribeInvalidation(sess)
	defer cancel()

	gh.setFile("main", "README.md", []byte("v2"))
	gt.V(t, gt.R1(env.uc.ReadContent(ctx, sess, "README.md")).NoError(t).Content).Equal("v1")

	gt.NoError(t, env.uc.HandlePush(ctx, &model.PushEvent{
		Repo:    model.RepoRef{Owner: "Octo", Name: "Blog"},
		Branch:  "main",
		HeadSHA: "c9",
	}))

	ev := <-events
	gt.V(t, ev.Reason).Equal("push")
	gt.V(t, ev.Branch).Equal("main")
	gt.V(t, gt.R1(env.uc.ReadContent(ctx, sess, "README.md")).NoError(t).Content).Equal("v2")

	// other branches keep their cache
	gt.NoError(t, env.uc.HandlePush(ctx, &model.PushEvent{Repo: model.RepoRef{Owner: "octo", Name: "blog"}, Branch: "other"}))
	gt.A(t, gh.client.GetContentCalls()).Length(2)
}

func TestHandlePushChangedPaths(t *testing.T) {
	gh := newFakeGitHub(map[string]string{
		"README.md":             "v1",
		"src/content/blog/a.md": "p1",
	})
	env := newTestEnv(t, gh, nil)
	ctx := testContext()
	sess := env.connect(t)
	repo := model.RepoRef{Owner: "octo", Name: "blog"}

	read := func(p string) string {
		return gt.R1(env.uc.ReadContent(ctx, sess, p)).NoError(t).Content
	}
	gt.V(t, read("README.md")).Equal("v1")
	gt.V(t, read("src/content/blog/a.md")).Equal("p1")

	gh.setFile("main", "README.md", []byte("v2"))
	gh.setFile("main", "src/content/blog/a.md", []byte("p2"))

	t.Run("only topics of the changed paths are dropped", func(t *testing.T) {
		gt.NoError(t, env.uc.HandlePush(ctx, &model.PushEvent{
			Repo:     repo,
			Branch:   "main",
			Modified: []string{"README.md"},
		}))
		gt.V(t, read("README.md")).Equal("v2")
		gt.V(t, read("src/content/blog/a.md")).Equal("p1")
	})

	t.Run("posts topic is dropped for a changed post", func(t *testing.T) {
		gt.NoError(t, env.uc.HandlePush(ctx, &model.PushEvent{
			Repo:     repo,
			Branch:   "main",
			Modified: []string{"src/content/blog/a.md"},
		}))
		gt.V(t, read("src/content/blog/a.md")).Equal("p2")
	})

	t.Run("branch created outside shows up after its push", func(t *testing.T) {
		names := func() []types.BranchName {
			var out []types.BranchName
			for _, b := range gt.R1(env.uc.ListBranches(ctx, sess)).NoError(t) {
				out = append(out, b.Name)
			}
			return out
		}
		gt.A(t, names()).Length(1)

		gh.mu.Lock()
		gh.branches["site-new-com"] = map[string][]byte{}
		gh.heads["site-new-com"] = "n0"
		gh.mu.Unlock()
		gt.A(t, names()).Length(1)

		gt.NoError(t, env.uc.HandlePush(ctx, &model.PushEvent{Repo: repo, Branch: "site-new-com"}))
		gt.A(t, names()).Length(2)
		gt.True(t, slices.Contains(names(), "site-new-com"))
	})
}
