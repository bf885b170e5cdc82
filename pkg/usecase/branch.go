package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ListBranches lists the branches of the active repository. The domain of a site branch is read from
// its site descriptor; a missing or broken descriptor leaves the domain empty.
func (x *UseCase) ListBranches(ctx context.Context, sess *model.Session) ([]*model.Branch, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	key := cacheKey(sess, model.TopicBranches, "list")
	key.Branch = ""
	cached, err := cache.Fetch(ctx, x.cache, key, func(ctx context.Context) ([]*model.Branch, error) {
		return x.fetchBranches(ctx, sess, repo)
	})
	if err != nil {
		return nil, err
	}

	branches := make([]*model.Branch, 0, len(cached))
	for _, b := range cached {
		c := *b
		c.IsTemplate = c.Name == repo.TemplateBranch
		c.IsActive = c.Name == repo.ActiveBranch
		branches = append(branches, &c)
	}
	slices.SortStableFunc(branches, func(a, b *model.Branch) int {
		if a.IsTemplate != b.IsTemplate {
			if a.IsTemplate {
				return -1
			}
			return 1
		}
		return strings.Compare(string(a.Name), string(b.Name))
	})
	return branches, nil
}

func (x *UseCase) fetchBranches(ctx context.Context, sess *model.Session, repo *model.Repository) ([]*model.Branch, error) {
	gh := x.github(sess)
	names, err := gh.ListBranches(ctx, repo.RepoRef)
	if err != nil {
		return nil, err
	}

	branches := make([]*model.Branch, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(x.scanLimit)
	for i, name := range names {
		branches[i] = &model.Branch{Name: name}
		if !strings.HasPrefix(string(name), model.SiteBranchPrefix) {
			continue
		}

		b := branches[i]
		eg.Go(func() error {
			content, err := gh.GetContent(ctx, repo.RepoRef, b.Name, x.layout.SiteDescriptorPath())
			if err != nil {
				if !errors.Is(err, types.ErrNotFound) {
					logging.From(ctx).Warn("failed to read site descriptor",
						slog.String("branch", string(b.Name)),
						slog.Any("error", err),
					)
				}
				return nil
			}

			var desc model.SiteDescriptor
			if err := json.Unmarshal([]byte(content.Content), &desc); err != nil || desc.Domain == "" {
				return nil
			}
			b.Domain = &desc.Domain
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return branches, nil
}

// CreateBranch creates the site branch for a domain from the head of the template branch, commits
// the site descriptor to it and makes it the active branch.
func (x *UseCase) CreateBranch(ctx context.Context, sess *model.Session, input *model.CreateBranchInput) (*model.Branch, error) {
	name, err := model.BranchNameFromDomain(input.Domain)
	if err != nil {
		return nil, err
	}
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	gh := x.github(sess)
	names, err := gh.ListBranches(ctx, repo.RepoRef)
	if err != nil {
		return nil, err
	}
	if slices.Contains(names, name) {
		return nil, goerr.Wrap(types.ErrConflict, "branch already exists",
			goerr.V("branch", name),
			goerr.V("domain", input.Domain),
		)
	}

	head, err := gh.GetBranchHead(ctx, repo.RepoRef, repo.TemplateBranch)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve template branch", goerr.V("template", repo.TemplateBranch))
	}
	if err := gh.CreateBranch(ctx, repo.RepoRef, name, head); err != nil {
		return nil, err
	}

	domain := strings.TrimSpace(input.Domain)
	descriptor, err := json.MarshalIndent(model.SiteDescriptor{Domain: domain}, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode site descriptor")
	}

	// The template may already carry a descriptor, which is then inherited by the new branch.
	descPath := x.layout.SiteDescriptorPath()
	var sha *types.BlobSHA
	if current, err := gh.GetContent(ctx, repo.RepoRef, name, descPath); err == nil {
		sha = &current.SHA
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	result, err := gh.PutFile(ctx, repo.RepoRef, &model.PutFileInput{
		Branch:  name,
		Path:    descPath,
		Content: append(descriptor, '\n'),
		Message: "Add site descriptor for " + domain,
		SHA:     sha,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "branch created but site descriptor could not be committed", goerr.V("branch", name))
	}

	if err := x.activateBranch(ctx, sess, name, "create-branch", model.TopicBranches); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("site branch created",
		slog.String("repo", repo.FullName),
		slog.String("branch", string(name)),
		slog.String("domain", domain),
	)
	return &model.Branch{
		Name:     name,
		IsActive: true,
		Domain:   &domain,
		HeadSHA:  result.CommitSHA,
	}, nil
}

// SwitchBranch makes an existing branch the active one. The session is saved before the caches are
// invalidated so that a refetch triggered by the event already sees the new branch.
func (x *UseCase) SwitchBranch(ctx context.Context, sess *model.Session, input *model.SwitchBranchInput) (*model.Repository, error) {
	name := types.BranchName(strings.TrimSpace(string(input.Name)))
	if name == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "branch name is empty")
	}
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	if _, err := x.github(sess).GetBranchHead(ctx, repo.RepoRef, name); err != nil {
		return nil, err
	}

	if err := x.activateBranch(ctx, sess, name, "switch-branch"); err != nil {
		return nil, err
	}
	return sess.ActiveRepository, nil
}

func (x *UseCase) activateBranch(ctx context.Context, sess *model.Session, name types.BranchName, reason string, extra ...model.Topic) error {
	sess.ActiveRepository.ActiveBranch = name
	if err := x.saveSession(ctx, sess); err != nil {
		return err
	}
	x.invalidate(sess, reason, append(slices.Clone(model.BranchScopedTopics), extra...)...)
	return nil
}
