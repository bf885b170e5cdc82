package usecase

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

func collectionTopic(c model.Collection) model.Topic {
	if c == model.CollectionPages {
		return model.TopicPages
	}
	return model.TopicPosts
}

// entryFiles returns the markdown files of a collection keyed by slug. Both "slug.md" and
// "slug/index.md" are recognised.
func (x *UseCase) entryFiles(ctx context.Context, sess *model.Session, c model.Collection) (map[string]*model.FileEntry, error) {
	dir, err := x.layout.CollectionDir(c)
	if err != nil {
		return nil, err
	}
	snapshot, err := x.tree(ctx, sess)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*model.FileEntry)
	for _, f := range snapshot.files {
		if !underDir(f.Path, dir) || !model.IsEntryFile(f.Path) {
			continue
		}
		slug := model.SlugFromPath(f.Path)
		if slug == "index" {
			parent := path.Dir(f.Path)
			if parent == path.Clean(dir) {
				continue
			}
			slug = path.Base(parent)
		}
		if _, ok := files[slug]; !ok {
			files[slug] = f
		}
	}
	return files, nil
}

func (x *UseCase) ListEntries(ctx context.Context, sess *model.Session, c model.Collection) ([]*model.EntrySummary, error) {
	if _, err := x.layout.CollectionDir(c); err != nil {
		return nil, err
	}
	if _, err := activeRepository(sess); err != nil {
		return nil, err
	}

	return cache.Fetch(ctx, x.cache, cacheKey(sess, collectionTopic(c), "list"), func(ctx context.Context) ([]*model.EntrySummary, error) {
		files, err := x.entryFiles(ctx, sess, c)
		if err != nil {
			return nil, err
		}

		slugs := make([]string, 0, len(files))
		for slug := range files {
			slugs = append(slugs, slug)
		}
		slices.Sort(slugs)

		summaries := make([]*model.EntrySummary, len(slugs))
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(x.scanLimit)
		for i, slug := range slugs {
			f := files[slug]
			eg.Go(func() error {
				content, err := x.ReadContent(ctx, sess, f.Path)
				if err != nil {
					return err
				}
				entry, err := model.ParseEntry(f.Path, content.Content)
				if err != nil {
					logging.From(ctx).Warn("skip unparsable frontmatter",
						slog.String("path", f.Path),
						slog.Any("error", err),
					)
					entry = &model.Entry{Path: f.Path, Frontmatter: model.Frontmatter{Title: slug}}
				}
				entry.Slug = slug
				entry.SHA = content.SHA
				summaries[i] = entry.Summary()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		slices.SortStableFunc(summaries, func(a, b *model.EntrySummary) int {
			// Newest first; undated entries last.
			return strings.Compare(b.PubDate, a.PubDate)
		})
		return summaries, nil
	})
}

func (x *UseCase) findEntry(ctx context.Context, sess *model.Session, c model.Collection, slug string) (*model.FileEntry, error) {
	if err := model.ValidateSlug(slug); err != nil {
		return nil, err
	}
	files, err := x.entryFiles(ctx, sess, c)
	if err != nil {
		return nil, err
	}
	f, ok := files[slug]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "entry not found", goerr.V("collection", c), goerr.V("slug", slug))
	}
	return f, nil
}

func (x *UseCase) GetEntry(ctx context.Context, sess *model.Session, c model.Collection, slug string) (*model.Entry, error) {
	f, err := x.findEntry(ctx, sess, c, slug)
	if err != nil {
		return nil, err
	}

	content, err := x.ReadContent(ctx, sess, f.Path)
	if err != nil {
		return nil, err
	}
	entry, err := model.ParseEntry(f.Path, content.Content)
	if err != nil {
		return nil, err
	}
	entry.Slug = slug
	entry.SHA = content.SHA
	return entry, nil
}

// CreateEntry commits a new entry. Empty frontmatter fields are filled from the content defaults
// settings and the publication date defaults to today.
func (x *UseCase) CreateEntry(ctx context.Context, sess *model.Session, c model.Collection, input *model.EntryInput) (*model.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	dir, err := x.layout.CollectionDir(c)
	if err != nil {
		return nil, err
	}

	files, err := x.entryFiles(ctx, sess, c)
	if err != nil {
		return nil, err
	}
	if existing, ok := files[input.Slug]; ok {
		return nil, goerr.Wrap(types.ErrConflict, "entry already exists",
			goerr.V("slug", input.Slug),
			goerr.V("path", existing.Path),
		)
	}

	format := input.Format
	if format == "" {
		format = "md"
	}

	entry := &model.Entry{
		Slug:        input.Slug,
		Path:        path.Join(dir, input.Slug+"."+format),
		Frontmatter: input.Frontmatter,
		Body:        input.Body,
	}
	x.applyContentDefaults(ctx, sess, &entry.Frontmatter)

	message := input.Message
	if message == "" {
		message = "Create " + string(c) + " " + input.Slug
	}
	return x.commitEntry(ctx, sess, entry, message, "")
}

func (x *UseCase) applyContentDefaults(ctx context.Context, sess *model.Session, fm *model.Frontmatter) {
	if fm.PubDate == "" {
		fm.PubDate = logging.CtxTime(ctx).Format("2006-01-02")
	}

	doc, err := x.GetContentDefaults(ctx, sess)
	if err != nil {
		logging.From(ctx).Warn("content defaults unavailable", slog.Any("error", err))
		return
	}
	if fm.Author == "" {
		fm.Author = doc.Value.Author
	}
	if fm.HeroImage == "" {
		fm.HeroImage = doc.Value.HeroImage
	}
	if len(fm.Tags) == 0 {
		fm.Tags = slices.Clone(doc.Value.Tags)
	}
	if doc.Value.Draft {
		fm.Draft = true
	}
}

func (x *UseCase) UpdateEntry(ctx context.Context, sess *model.Session, c model.Collection, input *model.EntryInput) (*model.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	f, err := x.findEntry(ctx, sess, c, input.Slug)
	if err != nil {
		return nil, err
	}

	entry := &model.Entry{
		Slug:        input.Slug,
		Path:        f.Path,
		Frontmatter: input.Frontmatter,
		Body:        input.Body,
	}
	message := input.Message
	if message == "" {
		message = "Update " + string(c) + " " + input.Slug
	}
	return x.commitEntry(ctx, sess, entry, message, input.BaseSHA)
}

func (x *UseCase) commitEntry(ctx context.Context, sess *model.Session, entry *model.Entry, message string, base types.BlobSHA) (*model.Entry, error) {
	raw, err := entry.Render()
	if err != nil {
		return nil, err
	}

	result, err := x.putFile(ctx, sess, entry.Path, []byte(raw), message, base)
	if err != nil {
		return nil, err
	}

	entry.SHA = result.SHA
	return entry, nil
}

func (x *UseCase) DeleteEntry(ctx context.Context, sess *model.Session, c model.Collection, slug string, input *model.DeleteContentInput) (*model.WriteResult, error) {
	f, err := x.findEntry(ctx, sess, c, slug)
	if err != nil {
		return nil, err
	}

	var message string
	var base types.BlobSHA
	if input != nil {
		message, base = input.Message, input.BaseSHA
	}
	if message == "" {
		message = "Delete " + string(c) + " " + slug
	}
	return x.deleteFile(ctx, sess, f.Path, message, base)
}
