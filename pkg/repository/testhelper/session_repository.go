package testhelper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

// TestAll runs all test cases for SessionRepository
// This is the main entry point for testing any SessionRepository implementation
func TestAll(t *testing.T, repo interfaces.SessionRepository) {
	t.Run("SessionCRUD", func(t *testing.T) {
		TestSessionCRUD(t, repo)
	})
	t.Run("SessionNotFound", func(t *testing.T) {
		TestSessionNotFound(t, repo)
	})
	t.Run("SessionExpiry", func(t *testing.T) {
		TestSessionExpiry(t, repo)
	})
	t.Run("PendingQueueRoundTrip", func(t *testing.T) {
		TestPendingQueueRoundTrip(t, repo)
	})
	t.Run("StaleCopyIsRejected", func(t *testing.T) {
		TestStaleCopyIsRejected(t, repo)
	})
}

func newSession(now time.Time) *model.Session {
	return &model.Session{
		ID:    types.NewSessionID(),
		Token: "ghp_testtoken",
		User: model.GitHubUser{
			ID:    1,
			Login: "octocat",
			Name:  "Octo Cat",
		},
		Scopes:    []string{"repo"},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

// TestSessionCRUD tests put, get, update and delete of a session
func TestSessionCRUD(t *testing.T, repo interfaces.SessionRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	sess := newSession(now)
	gt.NoError(t, repo.PutSession(ctx, sess))

	retrieved := gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, retrieved.ID).Equal(sess.ID)
	gt.V(t, retrieved.Token).Equal(sess.Token)
	gt.V(t, retrieved.User.Login).Equal("octocat")
	gt.V(t, retrieved.ActiveRepository).Equal(nil)

	// Update with an active repository
	sess.ActiveRepository = &model.Repository{
		RepoRef:        model.RepoRef{Owner: "octo", Name: "blog"},
		FullName:       "octo/blog",
		DefaultBranch:  "main",
		TemplateBranch: "main",
		ActiveBranch:   "site-example-com",
	}
	gt.NoError(t, repo.PutSession(ctx, sess))

	retrieved = gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, retrieved.ActiveRepository.FullName).Equal("octo/blog")
	gt.V(t, retrieved.ActiveRepository.ActiveBranch).Equal(types.BranchName("site-example-com"))

	// Mutating the caller's copy must not leak into the store
	sess.ActiveRepository.ActiveBranch = "other"
	retrieved = gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, retrieved.ActiveRepository.ActiveBranch).Equal(types.BranchName("site-example-com"))

	gt.NoError(t, repo.DeleteSession(ctx, sess.ID))
	_, err := repo.GetSession(ctx, sess.ID)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	// Deleting twice is fine
	gt.NoError(t, repo.DeleteSession(ctx, sess.ID))
}

// TestSessionNotFound tests lookup of an unknown session
func TestSessionNotFound(t *testing.T, repo interfaces.SessionRepository) {
	ctx := context.Background()
	_, err := repo.GetSession(ctx, types.NewSessionID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestSessionExpiry tests that an expired session is reported as not found
func TestSessionExpiry(t *testing.T, repo interfaces.SessionRepository) {
	now := time.Now().UTC().Truncate(time.Second)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })

	sess := newSession(now)
	gt.NoError(t, repo.PutSession(ctx, sess))

	later := logging.CtxWithTime(context.Background(), func() time.Time { return now.Add(2 * time.Hour) })
	_, err := repo.GetSession(later, sess.ID)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	// Removed for good, not only hidden
	_, err = repo.GetSession(ctx, sess.ID)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestPendingQueueRoundTrip tests that queued binary changes survive storage
func TestPendingQueueRoundTrip(t *testing.T, repo interfaces.SessionRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	sess := newSession(now)
	sess.Pending = []*model.PendingChange{
		{
			Path:     "public/images/hero.jpg",
			Op:       model.PendingUpsert,
			Content:  []byte{0xff, 0xd8, 0xff, 0x00, 0x01},
			BaseSHA:  "blob1",
			Branch:   "main",
			Reason:   "optimize",
			QueuedAt: now,
		},
		{
			Path:     "public/images/unused.png",
			Op:       model.PendingDelete,
			BaseSHA:  "blob2",
			Branch:   "main",
			QueuedAt: now,
		},
	}
	gt.NoError(t, repo.PutSession(ctx, sess))

	retrieved := gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.A(t, retrieved.Pending).Length(2)
	gt.V(t, retrieved.Pending[0].Content).Equal([]byte{0xff, 0xd8, 0xff, 0x00, 0x01})
	gt.V(t, retrieved.Pending[1].Op).Equal(model.PendingDelete)
	gt.V(t, retrieved.Pending[1].BaseSHA).Equal(types.BlobSHA("blob2"))

	gt.NoError(t, repo.DeleteSession(ctx, sess.ID))
}

// TestStaleCopyIsRejected tests that two copies loaded at the same revision cannot both be saved
func TestStaleCopyIsRejected(t *testing.T, repo interfaces.SessionRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	sess := newSession(now)
	gt.NoError(t, repo.PutSession(ctx, sess))
	gt.V(t, sess.Version).Equal(int64(1))

	switching := gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	cleaning := gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, switching.Version).Equal(int64(1))

	switching.ActiveRepository = &model.Repository{FullName: "octo/blog", ActiveBranch: "site-other-com"}
	gt.NoError(t, repo.PutSession(ctx, switching))
	gt.V(t, switching.Version).Equal(int64(2))

	cleaning.ActiveRepository = &model.Repository{FullName: "octo/blog", ActiveBranch: "main"}
	err := repo.PutSession(ctx, cleaning)
	gt.True(t, errors.Is(err, types.ErrConflict))
	gt.V(t, cleaning.Version).Equal(int64(1))

	stored := gt.R1(repo.GetSession(ctx, sess.ID)).NoError(t)
	gt.V(t, stored.ActiveRepository.ActiveBranch).Equal(types.BranchName("site-other-com"))
	gt.V(t, stored.Version).Equal(int64(2))

	// a copy of a session that was signed out cannot bring it back
	gt.NoError(t, repo.DeleteSession(ctx, sess.ID))
	err = repo.PutSession(ctx, stored)
	gt.True(t, errors.Is(err, types.ErrNotFound))
	_, err = repo.GetSession(ctx, sess.ID)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}
