package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

// enqueue adds change to the session queue, replacing an earlier change of the same path and branch.
func enqueue(sess *model.Session, change *model.PendingChange) {
	for i, p := range sess.Pending {
		if p.Path == change.Path && p.Branch == change.Branch {
			sess.Pending[i] = change
			return
		}
	}
	sess.Pending = append(sess.Pending, change)
}

// ListPending returns the changes queued for the active branch.
func (x *UseCase) ListPending(ctx context.Context, sess *model.Session) ([]*model.PendingChangeView, error) {
	active, _ := sess.SplitPending()
	views := make([]*model.PendingChangeView, 0, len(active))
	for _, p := range active {
		views = append(views, p.View())
	}
	return views, nil
}

// DiscardPending drops the changes queued for the active branch.
func (x *UseCase) DiscardPending(ctx context.Context, sess *model.Session) (int, error) {
	active, others := sess.SplitPending()
	if len(active) == 0 {
		return 0, nil
	}

	sess.Pending = others
	if err := x.saveSession(ctx, sess); err != nil {
		return 0, err
	}
	x.invalidate(sess, "discard", model.TopicPending)
	return len(active), nil
}

func pendingMessage(base string, change *model.PendingChange) string {
	if base != "" {
		return base + " (" + change.Path + ")"
	}
	switch change.Op {
	case model.PendingDelete:
		return "Delete unused image " + change.Path
	default:
		return "Optimize image " + change.Path
	}
}

// CommitPending applies every change queued for the active branch as its own commit. A failing change
// stays in the queue and does not stop the others. Changes of other branches are left alone.
func (x *UseCase) CommitPending(ctx context.Context, sess *model.Session, input *model.CommitPendingInput) (*model.CommitPendingResult, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	result := &model.CommitPendingResult{
		Committed: []*model.WriteResult{},
		Failed:    []*model.ItemError{},
	}
	active, others := sess.SplitPending()
	if len(active) == 0 {
		return result, nil
	}

	var message string
	if input != nil {
		message = input.Message
	}

	gh := x.github(sess)
	var remaining []*model.PendingChange
	topics := []model.Topic{model.TopicPending, model.TopicFiles}
	for _, change := range active {
		msg := pendingMessage(message, change)

		var written *model.WriteResult
		var err error
		switch change.Op {
		case model.PendingDelete:
			written, err = gh.DeleteFile(ctx, repo.RepoRef, &model.DeleteFileInput{
				Branch:  repo.ActiveBranch,
				Path:    change.Path,
				Message: msg,
				SHA:     change.BaseSHA,
			})
		default:
			var sha *types.BlobSHA
			if change.BaseSHA != "" {
				base := change.BaseSHA
				sha = &base
			}
			written, err = gh.PutFile(ctx, repo.RepoRef, &model.PutFileInput{
				Branch:  repo.ActiveBranch,
				Path:    change.Path,
				Content: change.Content,
				Message: msg,
				SHA:     sha,
			})
		}

		if err != nil {
			logging.From(ctx).Warn("failed to commit pending change",
				slog.String("path", change.Path),
				slog.String("op", string(change.Op)),
				slog.Any("error", err),
			)
			result.Failed = append(result.Failed, &model.ItemError{Path: change.Path, Error: err.Error()})
			remaining = append(remaining, change)
			continue
		}

		result.Committed = append(result.Committed, written)
		topics = append(topics, x.topicForPath(change.Path))
		x.recordAudit(ctx, sess, repo.ActiveBranch, string(change.Op), msg, written)
	}

	sess.Pending = append(others, remaining...)
	if err := x.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	x.invalidate(sess, "commit", topics...)

	result.Remaining = len(remaining)
	return result, nil
}
