package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// LoginWithToken verifies a personal access token against GitHub and opens a session for it.
func (x *UseCase) LoginWithToken(ctx context.Context, token types.GitHubToken) (*model.Session, error) {
	if strings.TrimSpace(string(token)) == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "token is empty")
	}
	return x.openSession(ctx, types.GitHubToken(strings.TrimSpace(string(token))))
}

func (x *UseCase) OAuthLoginURL(state string) (string, error) {
	if x.clients.OAuth() == nil {
		return "", goerr.Wrap(types.ErrNotConfigured, "GitHub OAuth is not configured")
	}
	if state == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "oauth state is empty")
	}
	return x.clients.OAuth().AuthCodeURL(state), nil
}

func (x *UseCase) LoginWithOAuthCode(ctx context.Context, code string) (*model.Session, error) {
	if x.clients.OAuth() == nil {
		return nil, goerr.Wrap(types.ErrNotConfigured, "GitHub OAuth is not configured")
	}
	if code == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "authorization code is empty")
	}

	token, err := x.clients.OAuth().Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return x.openSession(ctx, token)
}

// hasRepoScope reports whether a classic token may write repository contents. Tokens that do not
// report scopes (fine-grained and app tokens) are checked per repository on connect instead.
func hasRepoScope(scopes []string) bool {
	if scopes == nil {
		return true
	}
	return slices.Contains(scopes, "repo") || slices.Contains(scopes, "public_repo")
}

func (x *UseCase) openSession(ctx context.Context, token types.GitHubToken) (*model.Session, error) {
	user, err := x.clients.GitHub().NewClient(token).GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	if !hasRepoScope(user.Scopes) {
		return nil, goerr.Wrap(types.ErrForbidden, "token lacks repo scope",
			goerr.V("login", user.Login),
			goerr.V("scopes", user.Scopes),
		)
	}

	now := logging.CtxTime(ctx)
	sess := &model.Session{
		ID:        types.NewSessionID(),
		Token:     token,
		User:      user.GitHubUser,
		Scopes:    user.Scopes,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(x.sessionTTL),
	}
	if err := x.clients.SessionRepository().PutSession(ctx, sess); err != nil {
		return nil, goerr.Wrap(err, "failed to save session", goerr.V("login", user.Login))
	}

	logging.From(ctx).Info("session opened",
		slog.String("login", user.Login),
		slog.Any("session_id", sess.ID),
	)
	return sess, nil
}

func (x *UseCase) LookupSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.Wrap(types.ErrUnauthorized, "no session")
	}
	sess, err := x.clients.SessionRepository().GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrUnauthorized, "session not found or expired", goerr.V("session_id", id))
		}
		return nil, err
	}
	return sess, nil
}

func (x *UseCase) Logout(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return nil
	}
	if err := x.clients.SessionRepository().DeleteSession(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("session_id", id))
	}
	x.cache.Invalidate(string(id), model.AllTopics, "logout")
	return nil
}

func (x *UseCase) SubscribeInvalidation(sess *model.Session) (<-chan model.InvalidationEvent, func()) {
	return x.cache.Subscribe(string(sess.ID))
}

func (x *UseCase) saveSession(ctx context.Context, sess *model.Session) error {
	sess.UpdatedAt = logging.CtxTime(ctx)
	if err := x.clients.SessionRepository().PutSession(ctx, sess); err != nil {
		if errors.Is(err, types.ErrConflict) {
			return goerr.Wrap(err, "session was changed by another request, reload and retry", goerr.V("session_id", sess.ID))
		}
		if errors.Is(err, types.ErrNotFound) {
			return goerr.Wrap(types.ErrUnauthorized, "session ended while the request was running", goerr.V("session_id", sess.ID))
		}
		return goerr.Wrap(err, "failed to save session", goerr.V("session_id", sess.ID))
	}
	return nil
}

func (x *UseCase) github(sess *model.Session) interfaces.GitHubClient {
	return x.clients.GitHub().NewClient(sess.Token)
}

func activeRepository(sess *model.Session) (*model.Repository, error) {
	if sess.ActiveRepository == nil {
		return nil, goerr.Wrap(types.ErrNoActiveRepository, "connect a repository first")
	}
	return sess.ActiveRepository, nil
}

// cacheKey scopes a resource to the session and to its active repository and branch.
func cacheKey(sess *model.Session, topic model.Topic, name string) cache.Key {
	key := cache.Key{
		Scope: string(sess.ID),
		Topic: topic,
		Name:  name,
	}
	if repo := sess.ActiveRepository; repo != nil {
		key.Repo = strings.ToLower(repo.FullName)
		key.Branch = string(repo.ActiveBranch)
	}
	return key
}

func (x *UseCase) invalidate(sess *model.Session, reason string, topics ...model.Topic) {
	seen := make(map[model.Topic]struct{}, len(topics))
	uniq := make([]model.Topic, 0, len(topics))
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	x.cache.Invalidate(string(sess.ID), uniq, reason)
}
