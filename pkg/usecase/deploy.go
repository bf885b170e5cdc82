package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	stepCreateRepository = "create-repository"
	stepLinkDeployment   = "link-deployment"
	stepAddDomain        = "add-domain"
	stepConnect          = "connect"
)

// CloneRepository generates a new repository from the active one. Later steps run only when asked
// for; a failed step is reported and nothing is rolled back.
func (x *UseCase) CloneRepository(ctx context.Context, sess *model.Session, input *model.CloneRepositoryInput) (*model.CloneRepositoryResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	source, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	owner := input.Owner
	if owner == "" {
		owner = sess.User.Login
	}

	created, err := x.github(sess).CreateFromTemplate(ctx, &model.CreateFromTemplateInput{
		Template:    source.RepoRef,
		Owner:       owner,
		Name:        input.Name,
		Description: input.Description,
		Private:     input.Private,
	})
	if err != nil {
		return nil, err
	}

	result := &model.CloneRepositoryResult{
		Repository: created,
		Steps:      []*model.StepResult{{Step: stepCreateRepository, OK: true}},
	}
	logger := logging.From(ctx).With(slog.String("repo", created.FullName))
	logger.Info("repository generated from template", slog.String("template", source.FullName))

	if input.LinkDeployment {
		step := &model.StepResult{Step: stepLinkDeployment}
		result.Steps = append(result.Steps, step)

		if x.clients.Vercel() == nil {
			step.Error = "Vercel is not configured"
		} else if project, err := x.clients.Vercel().LinkProject(ctx, &model.LinkProjectInput{
			Name: created.Name,
			Repo: created.RepoRef,
		}); err != nil {
			logger.Warn("failed to link deployment project", slog.Any("error", err))
			step.Error = err.Error()
		} else {
			step.OK = true
			result.Project = project
		}
	}

	if input.Domain != "" {
		step := &model.StepResult{Step: stepAddDomain}
		result.Steps = append(result.Steps, step)

		domain := strings.ToLower(strings.TrimSpace(input.Domain))
		if result.Project == nil {
			step.Error = "no deployment project linked"
		} else if err := x.clients.Vercel().AddDomain(ctx, result.Project.Name, domain); err != nil {
			logger.Warn("failed to add domain", slog.String("domain", domain), slog.Any("error", err))
			step.Error = err.Error()
		} else {
			step.OK = true
		}
	}

	if input.Connect {
		step := &model.StepResult{Step: stepConnect}
		result.Steps = append(result.Steps, step)

		sess.ActiveRepository = &model.Repository{
			RepoRef:        created.RepoRef,
			FullName:       created.RepoRef.FullName(),
			DefaultBranch:  created.DefaultBranch,
			TemplateBranch: created.DefaultBranch,
			ActiveBranch:   created.DefaultBranch,
			Private:        created.Private,
			HTMLURL:        created.HTMLURL,
			LastSynced:     logging.CtxTime(ctx),
		}
		sess.Pending = nil
		if err := x.saveSession(ctx, sess); err != nil {
			step.Error = err.Error()
		} else {
			step.OK = true
			result.Connected = true
			x.invalidate(sess, "connect", model.AllTopics...)
		}
	}

	return result, nil
}

// Deploy triggers a deployment of the active branch.
func (x *UseCase) Deploy(ctx context.Context, sess *model.Session) (*model.DeployResult, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}
	if x.clients.Vercel() == nil {
		return nil, goerr.Wrap(types.ErrNotConfigured, "Vercel is not configured")
	}

	ghRepo, err := x.github(sess).GetRepository(ctx, repo.RepoRef)
	if err != nil {
		return nil, err
	}

	deployment, err := x.clients.Vercel().CreateDeployment(ctx, &model.CreateDeploymentInput{
		Project: repo.Name,
		Repo:    repo.RepoRef,
		RepoID:  ghRepo.ID,
		Ref:     repo.ActiveBranch,
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("deployment created",
		slog.String("repo", repo.FullName),
		slog.String("branch", string(repo.ActiveBranch)),
		slog.String("deployment", deployment.ID),
	)
	return &model.DeployResult{Deployment: deployment}, nil
}
