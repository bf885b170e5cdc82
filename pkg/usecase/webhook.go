package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
)

// HandlePush drops cached reads of the pushed branch in all sessions. When the push lists the changed
// paths only the topics holding them are dropped, together with the file tree.
func (x *UseCase) HandlePush(ctx context.Context, event *model.PushEvent) error {
	if event.Branch == "" {
		return nil
	}

	topics := x.pushTopics(event.Modified)
	n := x.cache.InvalidateBranch(strings.ToLower(event.Repo.FullName()), string(event.Branch), topics, "push")
	logging.From(ctx).Info("push received",
		slog.String("repo", event.Repo.FullName()),
		slog.String("branch", string(event.Branch)),
		slog.String("head", string(event.HeadSHA)),
		slog.String("pusher", event.Pusher),
		slog.Int("paths", len(event.Modified)),
		slog.Any("topics", topics),
		slog.Int("invalidated", n),
	)
	return nil
}

// pushTopics returns nil, meaning every topic, when no paths are known.
func (x *UseCase) pushTopics(paths []string) []model.Topic {
	if len(paths) == 0 {
		return nil
	}

	topics := []model.Topic{model.TopicFiles}
	seen := map[model.Topic]bool{model.TopicFiles: true}
	for _, p := range paths {
		t := x.topicForPath(p)
		if !seen[t] {
			seen[t] = true
			topics = append(topics, t)
		}
	}
	return topics
}
