package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ConnectRepository resolves the identifier, checks push access and makes the repository the active
// one of the session. Deployment linkage is best effort and only reported as a warning.
func (x *UseCase) ConnectRepository(ctx context.Context, sess *model.Session, input *model.ConnectRepositoryInput) (*model.ConnectRepositoryResult, error) {
	ref, err := model.ParseRepoIdentifier(input.Identifier)
	if err != nil {
		return nil, err
	}

	gh := x.github(sess)
	ghRepo, err := gh.GetRepository(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !ghRepo.CanPush {
		return nil, goerr.Wrap(types.ErrForbidden, "no write access to repository", goerr.V("repo", ref.FullName()))
	}

	template, err := x.resolveTemplateBranch(ctx, sess, ref, ghRepo.DefaultBranch)
	if err != nil {
		return nil, err
	}

	repo := &model.Repository{
		RepoRef:        ref,
		FullName:       ref.FullName(),
		DefaultBranch:  ghRepo.DefaultBranch,
		TemplateBranch: template,
		ActiveBranch:   template,
		Private:        ghRepo.Private,
		HTMLURL:        ghRepo.HTMLURL,
		LastSynced:     logging.CtxTime(ctx),
	}

	// Queued changes belong to the previous repository.
	sess.ActiveRepository = repo
	sess.Pending = nil
	if err := x.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	x.invalidate(sess, "connect", model.AllTopics...)

	result := &model.ConnectRepositoryResult{Repository: repo}
	if input.LinkDeployment {
		if warning := x.linkDeployment(ctx, ref); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	logging.From(ctx).Info("repository connected",
		slog.String("repo", repo.FullName),
		slog.String("branch", string(repo.ActiveBranch)),
	)
	return result, nil
}

func (x *UseCase) resolveTemplateBranch(ctx context.Context, sess *model.Session, ref model.RepoRef, defaultBranch types.BranchName) (types.BranchName, error) {
	if x.templateBranch == "" || x.templateBranch == defaultBranch {
		return defaultBranch, nil
	}

	if _, err := x.github(sess).GetBranchHead(ctx, ref, x.templateBranch); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			logging.From(ctx).Warn("configured template branch not found, using default branch",
				slog.String("repo", ref.FullName()),
				slog.String("template_branch", string(x.templateBranch)),
				slog.String("default_branch", string(defaultBranch)),
			)
			return defaultBranch, nil
		}
		return "", err
	}
	return x.templateBranch, nil
}

func (x *UseCase) linkDeployment(ctx context.Context, ref model.RepoRef) string {
	if x.clients.Vercel() == nil {
		return "deployment linkage skipped: Vercel is not configured"
	}

	project, err := x.clients.Vercel().LinkProject(ctx, &model.LinkProjectInput{
		Name: ref.Name,
		Repo: ref,
	})
	if err != nil {
		logging.From(ctx).Warn("failed to link deployment project",
			slog.String("repo", ref.FullName()),
			slog.Any("error", err),
		)
		return "deployment linkage failed: " + err.Error()
	}

	logging.From(ctx).Info("deployment project linked",
		slog.String("repo", ref.FullName()),
		slog.String("project", project.Name),
	)
	return ""
}

func (x *UseCase) DisconnectRepository(ctx context.Context, sess *model.Session) error {
	if sess.ActiveRepository == nil && len(sess.Pending) == 0 {
		return nil
	}

	sess.ActiveRepository = nil
	sess.Pending = nil
	if err := x.saveSession(ctx, sess); err != nil {
		return err
	}
	x.invalidate(sess, "disconnect", model.AllTopics...)
	return nil
}

// SyncRepository refreshes repository metadata from GitHub. When the active branch was deleted
// remotely, the session falls back to the template branch.
func (x *UseCase) SyncRepository(ctx context.Context, sess *model.Session) (*model.Repository, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	gh := x.github(sess)
	ghRepo, err := gh.GetRepository(ctx, repo.RepoRef)
	if err != nil {
		return nil, err
	}

	repo.DefaultBranch = ghRepo.DefaultBranch
	repo.Private = ghRepo.Private
	repo.HTMLURL = ghRepo.HTMLURL

	if _, err := gh.GetBranchHead(ctx, repo.RepoRef, repo.TemplateBranch); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		repo.TemplateBranch = ghRepo.DefaultBranch
	}

	if repo.ActiveBranch != repo.TemplateBranch {
		if _, err := gh.GetBranchHead(ctx, repo.RepoRef, repo.ActiveBranch); err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				return nil, err
			}
			logging.From(ctx).Warn("active branch vanished, falling back to template branch",
				slog.String("repo", repo.FullName),
				slog.String("branch", string(repo.ActiveBranch)),
			)
			repo.ActiveBranch = repo.TemplateBranch
		}
	}

	repo.LastSynced = logging.CtxTime(ctx)
	if err := x.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	x.invalidate(sess, "sync", model.AllTopics...)

	return repo, nil
}

// ListGitHubRepositories lists repositories the user can push to.
func (x *UseCase) ListGitHubRepositories(ctx context.Context, sess *model.Session) ([]*model.GitHubRepository, error) {
	key := cacheKey(sess, model.TopicRepository, "github-repos")
	key.Repo, key.Branch = "", ""

	return cache.Fetch(ctx, x.cache, key, func(ctx context.Context) ([]*model.GitHubRepository, error) {
		repos, err := x.github(sess).ListRepositories(ctx)
		if err != nil {
			return nil, err
		}

		writable := make([]*model.GitHubRepository, 0, len(repos))
		for _, repo := range repos {
			if repo.CanPush {
				writable = append(writable, repo)
			}
		}
		return writable, nil
	})
}
