package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/errutil"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// validateGitHubEvent checks the HMAC signature of a webhook delivery and parses it.
func validateGitHubEvent(r *http.Request, secret types.GitHubWebhookSecret) (any, error) {
	if secret == "" {
		return nil, goerr.Wrap(types.ErrNotConfigured, "webhook secret is not configured")
	}

	payload, err := github.ValidatePayload(r, []byte(secret))
	if err != nil {
		return nil, goerr.Wrap(types.ErrUnauthorized, "invalid webhook signature", goerr.V("error", err.Error()))
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "failed to parse webhook", goerr.V("error", err.Error()))
	}

	return event, nil
}

func refToBranch(v string) (types.BranchName, bool) {
	if ref := strings.SplitN(v, "/", 3); len(ref) == 3 && ref[0] == "refs" && ref[1] == "heads" {
		return types.BranchName(ref[2]), true
	}
	return "", false
}

// githubEventToPush returns nil for events that do not change branch contents.
func githubEventToPush(event any) *model.PushEvent {
	switch ev := event.(type) {
	case *github.PushEvent:
		branch, ok := refToBranch(ev.GetRef())
		if !ok {
			logging.Default().Debug("ignore push to non-branch ref", slog.String("ref", ev.GetRef()))
			return nil
		}

		ref, err := model.ParseRepoIdentifier(ev.GetRepo().GetFullName())
		if err != nil {
			logging.Default().Warn("ignore push event with invalid repository", slog.Any("error", err))
			return nil
		}

		seen := map[string]struct{}{}
		var modified []string
		for _, c := range ev.Commits {
			for _, paths := range [][]string{c.Added, c.Modified, c.Removed} {
				for _, p := range paths {
					if _, ok := seen[p]; !ok {
						seen[p] = struct{}{}
						modified = append(modified, p)
					}
				}
			}
		}

		return &model.PushEvent{
			Repo:     ref,
			Branch:   branch,
			HeadSHA:  types.CommitSHA(ev.GetAfter()),
			Pusher:   ev.GetPusher().GetName(),
			Modified: modified,
		}

	case *github.PingEvent:
		logging.Default().Info("received webhook ping", slog.Int64("hook_id", ev.GetHookID()))
		return nil

	default:
		logging.Default().Debug("ignore webhook event", slog.String("type", fmt.Sprintf("%T", event)))
		return nil
	}
}

// handleGitHubWebhook validates the delivery synchronously and invalidates caches in the
// background. GitHub only needs to know the delivery was accepted.
func (x *Server) handleGitHubWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, err := validateGitHubEvent(r, x.cfg.webhookSecret)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	push := githubEventToPush(event)
	if push == nil {
		writeData(ctx, w, map[string]string{"status": "ignored"})
		return
	}

	bgCtx := DetachContext(ctx)
	go runPushHandler(bgCtx, x.uc, push)

	writeJSON(ctx, w, http.StatusAccepted, &apiResponse{Success: true, Data: map[string]string{"status": "accepted"}})
}

func runPushHandler(ctx context.Context, uc interfaces.UseCase, push *model.PushEvent) {
	if err := uc.HandlePush(ctx, push); err != nil {
		errutil.HandleError(ctx, "fail to handle push event", err)
	}
}
