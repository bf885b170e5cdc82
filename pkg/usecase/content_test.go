package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/mock"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
	"github.com/m-mizutani/gt"
)

func TestReadContent(t *testing.T) {
	t.Run("reads are cached until a write", func(t *testing.T) {
		gh := newFakeGitHub(map[string]string{"src/config/navigation.json": `{"items":[]}`})
		env := newTestEnv(t, gh, nil)
		ctx := testContext()
		sess := env.connect(t)

		first := gt.R1(env.uc.ReadContent(ctx, sess, "src/config/navigation.json")).NoError(t)
		second := gt.R1(env.uc.ReadContent(ctx, sess, "src/config/navigation.json")).NoError(t)
		gt.V(t, second.SHA).Equal(first.SHA)
		gt.A(t, gh.client.GetContentCalls()).Length(1)

		gt.R1(env.uc.WriteContent(ctx, sess, &model.WriteContentInput{
			Path:    "src/config/navigation.json",
			Content: `{"items":[{"label":"Home","href":"/"}]}`,
			BaseSHA: first.SHA,
		})).NoError(t)

		third := gt.R1(env.uc.ReadContent(ctx, sess, "src/config/navigation.json")).NoError(t)
		gt.V(t, third.Content).Equal(`{"items":[{"label":"Home","href":"/"}]}`)
	})

	t.Run("invalid path", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.connect(t)

		for _, p := range []string{"", "/etc/passwd", "../secret", "src//a.md", "src/./a.md"} {
			_, err := env.uc.ReadContent(testContext(), sess, p)
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		}
	})

	t.Run("no active repository", func(t *testing.T) {
		env := newTestEnv(t, newFakeGitHub(nil), nil)
		sess := env.login(t)

		_, err := env.uc.ReadContent(testContext(), sess, "README.md")
		gt.True(t, errors.Is(err, types.ErrNoActiveRepository))
	})
}

func TestWriteContent(t *testing.T) {
	t.Run("stale sha is a conflict", func(t *testing.T) {
		gh := newFakeGitHub(map[string]string{"README.md": "v1"})
		env := newTestEnv(t, gh, nil)
		ctx := testContext()
		sess := env.connect(t)

		read := gt.R1(env.uc.ReadContent(ctx, sess, "README.md")).NoError(t)
		gh.setFile("main", "README.md", []byte("changed elsewhere"))

		_, err := env.uc.WriteContent(ctx, sess, &model.WriteContentInput{
			Path:    "README.md",
			Content: "v2",
			BaseSHA: read.SHA,
		})
		gt.True(t, errors.Is(err, types.ErrConflict))

		data, _ := gh.file("main", "README.md")
		gt.V(t, string(data)).Equal("changed elsewhere")
	})

	t.Run("without sha the last write wins", func(t *testing.T) {
		gh := newFakeGitHub(map[string]string{"README.md": "v1"})
		env := newTestEnv(t, gh, nil)
		ctx := testContext()
		sess := env.connect(t)

		gh.setFile("main", "README.md", []byte("changed elsewhere"))
		result := gt.R1(env.uc.WriteContent(ctx, sess, &model.WriteContentInput{
			Path:    "README.md",
			Content: "v2",
		})).NoError(t)
		gt.V(t, result.SHA).Equal(blobSHA([]byte("v2")))

		data, _ := gh.file("main", "README.md")
		gt.V(t, string(data)).Equal("v2")
		calls := gh.client.PutFileCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Input.Message).Equal("Update README.md")
	})

	t.Run("new file is created", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		env := newTestEnv(t, gh, nil)
		sess := env.connect(t)

		gt.R1(env.uc.WriteContent(testContext(), sess, &model.WriteContentInput{
			Path:    "public/robots.txt",
			Content: "User-agent: *",
			Message: "Add robots",
		})).NoError(t)

		calls := gh.client.PutFileCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Input.SHA == nil).Equal(true)
		gt.V(t, calls[0].Input.Message).Equal("Add robots")
		gt.V(t, calls[0].Input.Branch).Equal(types.BranchName("main"))
	})

	t.Run("writes go to the active branch", func(t *testing.T) {
		gh := newFakeGitHub(nil)
		env := newTestEnv(t, gh, nil)
		ctx := testContext()
		sess := env.connect(t)
		gt.R1(env.uc.CreateBranch(ctx, sess, &model.CreateBranchInput{Domain: "a.example"})).NoError(t)

		gt.R1(env.uc.WriteContent(ctx, sess, &model.WriteContentInput{Path: "notes.txt", Content: "x"})).NoError(t)
		_, onSite := gh.file("site-a-example", "notes.txt")
		_, onMain := gh.file("main", "notes.txt")
		gt.V(t, onSite).Equal(true)
		gt.V(t, onMain).Equal(false)
	})

	t.Run("commit is recorded to the audit log", func(t *testing.T) {
		var records []*model.AuditRecord
		audit := &mock.AuditLogMock{
			InsertFunc: func(ctx context.Context, r []*model.AuditRecord) error {
				records = append(records, r...)
				return nil
			},
		}
		env := newTestEnv(t, newFakeGitHub(nil), []infra.Option{infra.WithAuditLog(audit)})
		sess := env.connect(t)

		result := gt.R1(env.uc.WriteContent(testContext(), sess, &model.WriteContentInput{Path: "a.txt", Content: "a"})).NoError(t)
		gt.A(t, records).Length(1)
		gt.V(t, records[0].User).Equal("octocat")
		gt.V(t, records[0].Repo).Equal("octo/blog")
		gt.V(t, records[0].Branch).Equal("main")
		gt.V(t, records[0].Operation).Equal("upsert")
		gt.V(t, records[0].CommitSHA).Equal(string(result.CommitSHA))
		gt.V(t, records[0].Timestamp).Equal(testNow)
	})

	t.Run("audit failure does not fail the write", func(t *testing.T) {
		audit := &mock.AuditLogMock{
			InsertFunc: func(ctx context.Context, r []*model.AuditRecord) error {
				return types.ErrUpstream
			},
		}
		env := newTestEnv(t, newFakeGitHub(nil), []infra.Option{infra.WithAuditLog(audit)})
		sess := env.connect(t)

		gt.R1(env.uc.WriteContent(testContext(), sess, &model.WriteContentInput{Path: "a.txt", Content: "a"})).NoError(t)
	})
}

func TestDeleteContent(t *testing.T) {
	gh := newFakeGitHub(map[string]string{"old.txt": "bye"})
	env := newTestEnv(t, gh, nil)
	ctx := testContext()
	sess := env.connect(t)

	gt.R1(env.uc.DeleteContent(ctx, sess, &model.DeleteContentInput{Path: "old.txt"})).NoError(t)
	_, ok := gh.file("main", "old.txt")
	gt.V(t, ok).Equal(false)

	_, err := env.uc.DeleteContent(ctx, sess, &model.DeleteContentInput{Path: "old.txt"})
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

func TestListFiles(t *testing.T) {
	gh := newFakeGitHub(map[string]string{
		"README.md":                 "readme",
		"public/images/a.png":       "a",
		"public/images/sub/b.png":   "b",
		"public/imagesx/c.png":      "c",
		"src/content/blog/hello.md": "hello",
	})
	env := newTestEnv(t, gh, nil)
	ctx := testContext()
	sess := env.connect(t)

	all := gt.R1(env.uc.ListFiles(ctx, sess, "")).NoError(t)
	gt.A(t, all).Length(5)

	images := gt.R1(env.uc.ListFiles(ctx, sess, "public/images/")).NoError(t)
	gt.A(t, images).Length(2)
	gt.V(t, images[0].Path).Equal("public/images/a.png")
	gt.V(t, images[1].Path).Equal("public/images/sub/b.png")

	_, err := env.uc.ListFiles(ctx, sess, "../")
	gt.True(t, errors.Is(err, types.ErrValidationFailed))

	gt.A(t, gh.client.ListFilesCalls()).Length(1)
}
