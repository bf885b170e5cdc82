package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AnalyzeCheckout runs the image analysis against the HEAD commit of a local clone.
func (x *UseCase) AnalyzeCheckout(ctx context.Context, dir string) (*model.PerformanceReport, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, goerr.Wrap(types.ErrNotFound, "not a git repository", goerr.V("dir", dir))
		}
		return nil, goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	head, err := repo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve HEAD", goerr.V("dir", dir))
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read HEAD commit", goerr.V("commit", head.Hash().String()))
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit tree", goerr.V("commit", head.Hash().String()))
	}

	var files []*model.FileEntry
	contents := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, &model.FileEntry{
			Path: f.Name,
			SHA:  types.BlobSHA(f.Hash.String()),
			Size: f.Size,
		})
		if !x.layout.IsReferenceSource(f.Name) || x.layout.IsImage(f.Name) {
			return nil
		}
		text, err := f.Contents()
		if err != nil {
			return goerr.Wrap(err, "failed to read file", goerr.V("path", f.Name))
		}
		contents[f.Name] = text
		return nil
	})
	if err != nil {
		return nil, err
	}

	branch := types.BranchName(head.Name().Short())
	if !head.Name().IsBranch() {
		branch = types.BranchName(head.Hash().String())
	}

	report := buildReport(x.layout, branch, files, contents)
	report.Repository = originRepository(ctx, repo)
	return report, nil
}

func originRepository(ctx context.Context, repo *git.Repository) string {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	ref, err := model.ParseRepoIdentifier(remote.Config().URLs[0])
	if err != nil {
		logging.From(ctx).Debug("origin is not a GitHub repository", slog.String("url", remote.Config().URLs[0]))
		return ""
	}
	return ref.FullName()
}
