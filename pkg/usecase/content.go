package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type treeSnapshot struct {
	files     []*model.FileEntry
	truncated bool
}

func (x *treeSnapshot) lookup(p string) *model.FileEntry {
	for _, f := range x.files {
		if f.Path == p {
			return f
		}
	}
	return nil
}

func (x *UseCase) fetchTree(ctx context.Context, sess *model.Session, repo *model.Repository) (*treeSnapshot, error) {
	files, truncated, err := x.github(sess).ListFiles(ctx, repo.RepoRef, repo.ActiveBranch)
	if err != nil {
		return nil, err
	}
	if truncated {
		logging.From(ctx).Warn("repository tree listing truncated",
			slog.String("repo", repo.FullName),
			slog.String("branch", string(repo.ActiveBranch)),
			slog.Int("files", len(files)),
		)
	}
	return &treeSnapshot{files: files, truncated: truncated}, nil
}

func (x *UseCase) tree(ctx context.Context, sess *model.Session) (*treeSnapshot, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, x.cache, cacheKey(sess, model.TopicFiles, "tree"), func(ctx context.Context) (*treeSnapshot, error) {
		return x.fetchTree(ctx, sess, repo)
	})
}

// topicForPath maps a repository path to the cache topic its content belongs to.
func (x *UseCase) topicForPath(p string) model.Topic {
	switch {
	case underDir(p, x.layout.PostsDir):
		return model.TopicPosts
	case underDir(p, x.layout.PagesDir):
		return model.TopicPages
	case path.Dir(p) == path.Clean(x.layout.ConfigDir):
		for _, kind := range []model.SettingsKind{
			model.SettingsBranding,
			model.SettingsNavigation,
			model.SettingsTheme,
			model.SettingsAdSense,
			model.SettingsContentDefaults,
		} {
			if p == x.layout.SettingsPath(kind) {
				return kind.Topic()
			}
		}
		return model.TopicSettings
	}
	return model.TopicFiles
}

func underDir(p, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return dir != "" && strings.HasPrefix(p, dir+"/")
}

// ListFiles lists blobs of the active branch under dir. An empty dir lists the whole tree.
func (x *UseCase) ListFiles(ctx context.Context, sess *model.Session, dir string) ([]*model.FileEntry, error) {
	dir = strings.Trim(dir, "/")
	if dir != "" {
		if err := model.ValidatePath(dir); err != nil {
			return nil, err
		}
	}

	snapshot, err := x.tree(ctx, sess)
	if err != nil {
		return nil, err
	}

	files := make([]*model.FileEntry, 0, len(snapshot.files))
	for _, f := range snapshot.files {
		if dir == "" || underDir(f.Path, dir) {
			files = append(files, f)
		}
	}
	return files, nil
}

func (x *UseCase) ReadContent(ctx context.Context, sess *model.Session, p string) (*model.Content, error) {
	if err := model.ValidatePath(p); err != nil {
		return nil, err
	}
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	return cache.Fetch(ctx, x.cache, cacheKey(sess, x.topicForPath(p), p), func(ctx context.Context) (*model.Content, error) {
		return x.github(sess).GetContent(ctx, repo.RepoRef, repo.ActiveBranch, p)
	})
}

// currentSHA resolves the sha a write is based on. A sha sent by the client is used as is so GitHub
// can reject stale writes; otherwise the current sha is looked up and the write wins.
func (x *UseCase) currentSHA(ctx context.Context, sess *model.Session, repo *model.Repository, p string, base types.BlobSHA) (*types.BlobSHA, error) {
	if base != "" {
		return &base, nil
	}

	current, err := x.github(sess).GetContent(ctx, repo.RepoRef, repo.ActiveBranch, p)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	sha := current.SHA
	return &sha, nil
}

func (x *UseCase) putFile(ctx context.Context, sess *model.Session, p string, content []byte, message string, base types.BlobSHA) (*model.WriteResult, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	sha, err := x.currentSHA(ctx, sess, repo, p, base)
	if err != nil {
		return nil, err
	}
	if message == "" {
		if sha == nil {
			message = fmt.Sprintf("Create %s", p)
		} else {
			message = fmt.Sprintf("Update %s", p)
		}
	}

	result, err := x.github(sess).PutFile(ctx, repo.RepoRef, &model.PutFileInput{
		Branch:  repo.ActiveBranch,
		Path:    p,
		Content: content,
		Message: message,
		SHA:     sha,
	})
	if err != nil {
		return nil, err
	}

	x.invalidate(sess, "write", x.topicForPath(p), model.TopicFiles)
	x.recordAudit(ctx, sess, repo.ActiveBranch, "upsert", message, result)
	return result, nil
}

func (x *UseCase) deleteFile(ctx context.Context, sess *model.Session, p string, message string, base types.BlobSHA) (*model.WriteResult, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	sha, err := x.currentSHA(ctx, sess, repo, p, base)
	if err != nil {
		return nil, err
	}
	if sha == nil {
		return nil, goerr.Wrap(types.ErrNotFound, "file not found", goerr.V("path", p), goerr.V("branch", repo.ActiveBranch))
	}
	if message == "" {
		message = fmt.Sprintf("Delete %s", p)
	}

	result, err := x.github(sess).DeleteFile(ctx, repo.RepoRef, &model.DeleteFileInput{
		Branch:  repo.ActiveBranch,
		Path:    p,
		Message: message,
		SHA:     *sha,
	})
	if err != nil {
		return nil, err
	}

	x.invalidate(sess, "delete", x.topicForPath(p), model.TopicFiles)
	x.recordAudit(ctx, sess, repo.ActiveBranch, "delete", message, result)
	return result, nil
}

func (x *UseCase) WriteContent(ctx context.Context, sess *model.Session, input *model.WriteContentInput) (*model.WriteResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return x.putFile(ctx, sess, input.Path, []byte(input.Content), input.Message, input.BaseSHA)
}

func (x *UseCase) DeleteContent(ctx context.Context, sess *model.Session, input *model.DeleteContentInput) (*model.WriteResult, error) {
	if err := model.ValidatePath(input.Path); err != nil {
		return nil, err
	}
	return x.deleteFile(ctx, sess, input.Path, input.Message, input.BaseSHA)
}
