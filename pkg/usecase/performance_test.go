package usecase_test

import (
	"context"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/mock"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/astrodash/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func perfFiles(t *testing.T) (map[string]string, []byte) {
	big := encodePNG(t, gradient(96, 96), png.NoCompression)
	return map[string]string{
		"public/images/used.png":    "used",
		"public/images/unused.png":  "unused",
		"public/images/big.png":     string(big),
		"public/favicon.svg":        "<svg/>",
		"src/assets/hero.jpg":       "hero",
		"src/content/blog/hello.md": "---\ntitle: Hello\nheroImage: ../../assets/hero.jpg\n---\n![x](/images/used.png)\n",
		"src/layouts/Base.astro":    `<link rel="icon" href="/favicon.svg" />`,
		"README.md":                 "Screenshot: public/images/unused.png",
	}, big
}

func smallLayout() usecase.Option {
	layout := model.DefaultSiteLayout()
	layout.OptimizeMinSize = 1024
	return usecase.WithLayout(layout)
}

func TestAnalyzePerformance(t *testing.T) {
	files, big := perfFiles(t)
	delete(files, "README.md")
	gh := newFakeGitHub(files)
	env := newTestEnv(t, gh, nil, smallLayout())
	sess := env.connect(t)

	report := gt.R1(env.uc.AnalyzePerformance(testContext(), sess)).NoError(t)
	gt.V(t, report.Repository).Equal("octo/blog")
	gt.V(t, report.Branch).Equal(types.BranchName("main"))
	gt.A(t, report.Images).Length(5)
	gt.V(t, report.ScannedFiles).Equal(2)

	byPath := map[string]*model.ImageAsset{}
	for _, img := range report.Images {
		byPath[img.Path] = img
	}
	gt.V(t, byPath["public/images/used.png"].Used).Equal(true)
	gt.V(t, byPath["public/images/used.png"].ReferencedBy).Equal([]string{"src/content/blog/hello.md"})
	gt.V(t, byPath["src/assets/hero.jpg"].Used).Equal(true)
	gt.V(t, byPath["public/favicon.svg"].Used).Equal(true)
	gt.V(t, byPath["public/images/unused.png"].Used).Equal(false)
	gt.V(t, byPath["public/images/big.png"].Used).Equal(false)

	gt.V(t, byPath["public/images/big.png"].Optimizable).Equal(true)
	gt.V(t, byPath["public/images/big.png"].Format).Equal("png")
	gt.V(t, byPath["public/favicon.svg"].Optimizable).Equal(false)

	gt.V(t, report.Images[0].Path).Equal("public/images/big.png")
	gt.V(t, report.UnusedCount).Equal(2)
	gt.V(t, report.UnusedSize).Equal(int64(len(big) + len("unused")))
	gt.V(t, report.OptimizableCount).Equal(1)
}

func TestCleanupPerformance(t *testing.T) {
	t.Run("referenced image is blocked and not queued", func(t *testing.T) {
		files, _ := perfFiles(t)
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		result := gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete: []string{"public/images/used.png"},
		})).NoError(t)
		gt.V(t, result.BlockedCount).Equal(1)
		gt.V(t, result.Blocked[0].ReferencedBy).Equal([]string{"src/content/blog/hello.md"})
		gt.A(t, result.Deleted).Length(0)
		gt.A(t, sess.Pending).Length(0)
	})

	t.Run("reference added after analysis blocks the deletion", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		report := gt.R1(env.uc.AnalyzePerformance(ctx, sess)).NoError(t)
		for _, img := range report.Images {
			if img.Path == "public/images/unused.png" {
				gt.V(t, img.Used).Equal(false)
			}
		}

		gh.setFile("main", "src/content/blog/hello.md", []byte("![y](/images/unused.png)"))
		result := gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete: []string{"public/images/unused.png"},
		})).NoError(t)
		gt.V(t, result.BlockedCount).Equal(1)
		gt.A(t, sess.Pending).Length(0)
	})

	t.Run("unused image is queued for deletion", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		result := gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete: []string{"public/images/unused.png", "public/images/unused.png", "public/images/missing.png"},
		})).NoError(t)
		gt.V(t, result.Deleted).Equal([]string{"public/images/unused.png"})
		gt.V(t, result.BlockedCount).Equal(0)
		gt.A(t, result.Failed).Length(1)
		gt.V(t, result.Failed[0].Path).Equal("public/images/missing.png")
		gt.V(t, result.PendingCount).Equal(1)

		// nothing is committed yet
		_, ok := gh.file("main", "public/images/unused.png")
		gt.V(t, ok).Equal(true)
		gt.A(t, gh.client.DeleteFileCalls()).Length(0)

		stored := gt.R1(env.sessions.GetSession(ctx, sess.ID)).NoError(t)
		gt.A(t, stored.Pending).Length(1)
		gt.V(t, stored.Pending[0].Op).Equal(model.PendingDelete)
	})

	t.Run("optimize queues smaller image and skips already optimized one", func(t *testing.T) {
		files, big := perfFiles(t)
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		result := gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Optimize: []string{"public/images/big.png", "public/favicon.svg"},
		})).NoError(t)
		gt.A(t, result.Optimized).Length(1)
		gt.V(t, result.Optimized[0].Before).Equal(int64(len(big)))
		gt.True(t, result.Optimized[0].After < result.Optimized[0].Before)
		gt.V(t, result.SavedBytes).Equal(result.Optimized[0].Before - result.Optimized[0].After)
		gt.A(t, result.Skipped).Length(1)
		gt.V(t, result.Skipped[0].Path).Equal("public/favicon.svg")

		gt.NoError(t, env.commitAll(t, sess))
		optimized, _ := gh.file("main", "public/images/big.png")
		gt.V(t, int64(len(optimized))).Equal(result.Optimized[0].After)

		again := gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Optimize: []string{"public/images/big.png"},
		})).NoError(t)
		gt.A(t, again.Optimized).Length(0)
		gt.A(t, again.Skipped).Length(1)
		gt.V(t, again.Skipped[0].Reason).Equal("no size reduction")
		gt.A(t, sess.Pending).Length(0)

		data, _ := gh.file("main", "public/images/big.png")
		gt.V(t, len(data)).Equal(len(optimized))
	})

	t.Run("image queued for deletion is not optimized", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		env := newTestEnv(t, newFakeGitHub(files), nil, smallLayout())
		sess := env.connect(t)

		result := gt.R1(env.uc.CleanupPerformance(testContext(), sess, &model.CleanupInput{
			Delete:   []string{"public/images/big.png"},
			Optimize: []string{"public/images/big.png"},
		})).NoError(t)
		gt.A(t, result.Deleted).Length(1)
		gt.A(t, result.Optimized).Length(0)
		gt.V(t, result.Skipped[0].Reason).Equal("queued for deletion")
		gt.A(t, sess.Pending).Length(1)
	})

	t.Run("per image failure does not abort the batch", func(t *testing.T) {
		files, _ := perfFiles(t)
		files["public/images/broken.png"] = "this is not a png"
		env := newTestEnv(t, newFakeGitHub(files), nil, smallLayout())
		sess := env.connect(t)

		result := gt.R1(env.uc.CleanupPerformance(testContext(), sess, &model.CleanupInput{
			Optimize: []string{"public/images/broken.png", "public/images/big.png"},
		})).NoError(t)
		gt.A(t, result.Failed).Length(1)
		gt.V(t, result.Failed[0].Path).Equal("public/images/broken.png")
		gt.A(t, result.Optimized).Length(1)
	})

	t.Run("originals are backed up", func(t *testing.T) {
		files, big := perfFiles(t)
		delete(files, "README.md")
		backups := map[string][]byte{}
		storage := &mock.ObjectStorageMock{
			PutFunc: func(ctx context.Context, object string, r io.Reader) error {
				data, err := io.ReadAll(r)
				gt.NoError(t, err)
				backups[object] = data
				return nil
			},
		}
		env := newTestEnv(t, newFakeGitHub(files), []infra.Option{infra.WithObjectStorage(storage)}, smallLayout())
		sess := env.connect(t)

		gt.R1(env.uc.CleanupPerformance(testContext(), sess, &model.CleanupInput{
			Delete:   []string{"public/images/unused.png"},
			Optimize: []string{"public/images/big.png"},
		})).NoError(t)

		gt.V(t, string(backups["octo/blog/main/20260301T120000Z/public/images/unused.png"])).Equal("unused")
		gt.V(t, backups["octo/blog/main/20260301T120000Z/public/images/big.png"]).Equal(big)
	})

	t.Run("invalid input", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.connect(t)

		for _, input := range []*model.CleanupInput{
			{},
			{Delete: []string{"../etc/passwd"}},
			{Optimize: []string{"public/a.png"}, Preset: "extreme"},
		} {
			_, err := env.uc.CleanupPerformance(testContext(), sess, input)
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		}
	})
}

func (x *testEnv) commitAll(t *testing.T, sess *model.Session) error {
	t.Helper()
	result, err := x.uc.CommitPending(testContext(), sess, &model.CommitPendingInput{})
	if err != nil {
		return err
	}
	gt.A(t, result.Failed).Length(0)
	return nil
}

func TestCommitPending(t *testing.T) {
	t.Run("each change is its own commit", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete:   []string{"public/images/unused.png"},
			Optimize: []string{"public/images/big.png"},
		})).NoError(t)

		views := gt.R1(env.uc.ListPending(ctx, sess)).NoError(t)
		gt.A(t, views).Length(2)

		result := gt.R1(env.uc.CommitPending(ctx, sess, &model.CommitPendingInput{Message: "Clean up images"})).NoError(t)
		gt.A(t, result.Committed).Length(2)
		gt.A(t, result.Failed).Length(0)
		gt.V(t, result.Remaining).Equal(0)
		gt.A(t, sess.Pending).Length(0)

		_, ok := gh.file("main", "public/images/unused.png")
		gt.V(t, ok).Equal(false)
		gt.V(t, gh.client.DeleteFileCalls()[0].Input.Message).Equal("Clean up images (public/images/unused.png)")
		gt.V(t, gh.client.PutFileCalls()[0].Input.Message).Equal("Clean up images (public/images/big.png)")
	})

	t.Run("failures stay queued", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete:   []string{"public/images/unused.png"},
			Optimize: []string{"public/images/big.png"},
		})).NoError(t)

		// somebody else changed the image after it was queued
		gh.setFile("main", "public/images/big.png", []byte("replaced"))

		result := gt.R1(env.uc.CommitPending(ctx, sess, nil)).NoError(t)
		gt.A(t, result.Committed).Length(1)
		gt.A(t, result.Failed).Length(1)
		gt.V(t, result.Failed[0].Path).Equal("public/images/big.png")
		gt.True(t, strings.Contains(result.Failed[0].Error, "sha does not match"))
		gt.V(t, result.Remaining).Equal(1)

		stored := gt.R1(env.sessions.GetSession(ctx, sess.ID)).NoError(t)
		gt.A(t, stored.Pending).Length(1)
		gt.V(t, stored.Pending[0].Path).Equal("public/images/big.png")
	})

	t.Run("changes queued on another branch are not committed", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		gh := newFakeGitHub(files)
		env := newTestEnv(t, gh, nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{
			Delete: []string{"public/images/unused.png"},
		})).NoError(t)
		gt.R1(env.uc.CreateBranch(ctx, sess, &model.CreateBranchInput{Domain: "other.com"})).NoError(t)
		gt.V(t, sess.ActiveRepository.ActiveBranch).Equal(types.BranchName("site-other-com"))

		views := gt.R1(env.uc.ListPending(ctx, sess)).NoError(t)
		gt.A(t, views).Length(0)
		gt.V(t, sess.View().PendingCount).Equal(0)

		result := gt.R1(env.uc.CommitPending(ctx, sess, nil)).NoError(t)
		gt.A(t, result.Committed).Length(0)
		gt.A(t, gh.client.DeleteFileCalls()).Length(0)
		_, onMain := gh.file("main", "public/images/unused.png")
		gt.V(t, onMain).Equal(true)
		_, onSite := gh.file("site-other-com", "public/images/unused.png")
		gt.V(t, onSite).Equal(true)

		n := gt.R1(env.uc.DiscardPending(ctx, sess)).NoError(t)
		gt.V(t, n).Equal(0)
		gt.A(t, sess.Pending).Length(1)

		// back on main the queued deletion is visible and commits to main only
		gt.R1(env.uc.SwitchBranch(ctx, sess, &model.SwitchBranchInput{Name: "main"})).NoError(t)
		views = gt.R1(env.uc.ListPending(ctx, sess)).NoError(t)
		gt.A(t, views).Length(1)

		result = gt.R1(env.uc.CommitPending(ctx, sess, nil)).NoError(t)
		gt.A(t, result.Committed).Length(1)
		gt.V(t, gh.client.DeleteFileCalls()[0].Input.Branch).Equal(types.BranchName("main"))
		_, onMain = gh.file("main", "public/images/unused.png")
		gt.V(t, onMain).Equal(false)
		_, onSite = gh.file("site-other-com", "public/images/unused.png")
		gt.V(t, onSite).Equal(true)
		gt.A(t, sess.Pending).Length(0)
	})

	t.Run("discard", func(t *testing.T) {
		files, _ := perfFiles(t)
		delete(files, "README.md")
		env := newTestEnv(t, newFakeGitHub(files), nil, smallLayout())
		ctx := testContext()
		sess := env.connect(t)

		gt.R1(env.uc.CleanupPerformance(ctx, sess, &model.CleanupInput{Delete: []string{"public/images/unused.png"}})).NoError(t)
		n := gt.R1(env.uc.DiscardPending(ctx, sess)).NoError(t)
		gt.V(t, n).Equal(1)
		gt.A(t, sess.Pending).Length(0)

		n = gt.R1(env.uc.DiscardPending(ctx, sess)).NoError(t)
		gt.V(t, n).Equal(0)
	})

	t.Run("empty queue", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		env := newTestEnv(t, gh, nil)
		sess := env.connect(t)

		result := gt.R1(env.uc.CommitPending(testContext(), sess, nil)).NoError(t)
		gt.A(t, result.Committed).Length(0)
		gt.A(t, gh.client.PutFileCalls()).Length(0)
	})
}
