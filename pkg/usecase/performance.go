package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const maxReferencedBy = 3

// buildReport classifies images of a file listing. contents maps each reference source to its text.
func buildReport(layout model.SiteLayout, branch types.BranchName, files []*model.FileEntry, contents map[string]string) *model.PerformanceReport {
	report := &model.PerformanceReport{
		Branch:       branch,
		Images:       []*model.ImageAsset{},
		ScannedFiles: len(contents),
	}

	sources := make([]string, 0, len(contents))
	for p := range contents {
		sources = append(sources, p)
	}
	slices.Sort(sources)

	for _, f := range files {
		if !layout.IsImage(f.Path) {
			continue
		}

		asset := &model.ImageAsset{
			Path:   f.Path,
			SHA:    f.SHA,
			Size:   f.Size,
			Format: imageFormat(path.Ext(f.Path)),
		}
		refs := findReferences(layout, f.Path, sources, contents, maxReferencedBy)
		asset.Used = len(refs) > 0
		asset.ReferencedBy = refs
		asset.Optimizable = isOptimizableFormat(asset.Format) && f.Size >= layout.OptimizeMinSize

		report.Images = append(report.Images, asset)
		report.TotalSize += f.Size
		if !asset.Used {
			report.UnusedCount++
			report.UnusedSize += f.Size
		}
		if asset.Optimizable {
			report.OptimizableCount++
			report.OptimizableSize += f.Size
		}
	}

	slices.SortStableFunc(report.Images, func(a, b *model.ImageAsset) int {
		if a.Size != b.Size {
			if a.Size > b.Size {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Path, b.Path)
	})
	return report
}

// findReferences returns up to limit sources mentioning any reference form of the image. A limit
// of 0 returns all of them.
func findReferences(layout model.SiteLayout, image string, sources []string, contents map[string]string, limit int) []string {
	forms := layout.ReferenceForms(image)
	var refs []string
	for _, src := range sources {
		if src == image {
			continue
		}
		text := contents[src]
		for _, form := range forms {
			if strings.Contains(text, form) {
				refs = append(refs, src)
				break
			}
		}
		if limit > 0 && len(refs) >= limit {
			break
		}
	}
	return refs
}

// referenceContents reads every reference source of the listing. With fresh set, reads bypass the
// cache so decisions are based on the branch as it is now.
func (x *UseCase) referenceContents(ctx context.Context, sess *model.Session, repo *model.Repository, files []*model.FileEntry, fresh bool) (map[string]string, error) {
	var targets []*model.FileEntry
	for _, f := range files {
		if x.layout.IsReferenceSource(f.Path) && !x.layout.IsImage(f.Path) {
			targets = append(targets, f)
		}
	}

	texts := make([]string, len(targets))
	gh := x.github(sess)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.scanLimit)
	for i, f := range targets {
		eg.Go(func() error {
			var content *model.Content
			var err error
			if fresh {
				content, err = gh.GetContent(egCtx, repo.RepoRef, repo.ActiveBranch, f.Path)
			} else {
				content, err = x.ReadContent(egCtx, sess, f.Path)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to read reference source", goerr.V("path", f.Path))
			}
			texts[i] = content.Content
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	contents := make(map[string]string, len(targets))
	for i, f := range targets {
		contents[f.Path] = texts[i]
	}
	return contents, nil
}

func (x *UseCase) AnalyzePerformance(ctx context.Context, sess *model.Session) (*model.PerformanceReport, error) {
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}
	snapshot, err := x.tree(ctx, sess)
	if err != nil {
		return nil, err
	}
	contents, err := x.referenceContents(ctx, sess, repo, snapshot.files, false)
	if err != nil {
		return nil, err
	}

	report := buildReport(x.layout, repo.ActiveBranch, snapshot.files, contents)
	report.Truncated = snapshot.truncated
	report.Repository = repo.FullName
	return report, nil
}

// CleanupPerformance queues deletions of unused images and re-encoded uploads of large ones. Nothing
// is committed here; the queue is applied by CommitPending.
func (x *UseCase) CleanupPerformance(ctx context.Context, sess *model.Session, input *model.CleanupInput) (*model.CleanupResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	preset, err := model.LookupPreset(input.Preset)
	if err != nil {
		return nil, err
	}
	repo, err := activeRepository(sess)
	if err != nil {
		return nil, err
	}

	snapshot, err := x.fetchTree(ctx, sess, repo)
	if err != nil {
		return nil, err
	}

	result := &model.CleanupResult{
		Optimized: []*model.OptimizedImage{},
		Skipped:   []*model.SkippedImage{},
		Deleted:   []string{},
		Blocked:   []*model.BlockedImage{},
		Failed:    []*model.ItemError{},
	}
	now := logging.CtxTime(ctx)
	queued := 0

	deleting := make(map[string]struct{})
	if len(input.Delete) > 0 {
		contents, err := x.referenceContents(ctx, sess, repo, snapshot.files, true)
		if err != nil {
			return nil, err
		}
		sources := make([]string, 0, len(contents))
		for p := range contents {
			sources = append(sources, p)
		}
		slices.Sort(sources)

		for _, p := range uniqueStrings(input.Delete) {
			f := snapshot.lookup(p)
			if f == nil {
				result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: "file not found"})
				continue
			}
			if !x.layout.IsImage(p) {
				result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: "not an image asset"})
				continue
			}
			if refs := findReferences(x.layout, p, sources, contents, 0); len(refs) > 0 {
				result.Blocked = append(result.Blocked, &model.BlockedImage{Path: p, ReferencedBy: refs})
				continue
			}

			x.backupOriginal(ctx, sess, repo, f, nil)
			enqueue(sess, &model.PendingChange{
				Path:     p,
				Op:       model.PendingDelete,
				BaseSHA:  f.SHA,
				Branch:   repo.ActiveBranch,
				Reason:   "unused image",
				QueuedAt: now,
			})
			deleting[p] = struct{}{}
			result.Deleted = append(result.Deleted, p)
			queued++
		}
	}

	gh := x.github(sess)
	for _, p := range uniqueStrings(input.Optimize) {
		if _, ok := deleting[p]; ok {
			result.Skipped = append(result.Skipped, &model.SkippedImage{Path: p, Reason: "queued for deletion"})
			continue
		}
		f := snapshot.lookup(p)
		if f == nil {
			result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: "file not found"})
			continue
		}
		if !x.layout.IsImage(p) {
			result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: "not an image asset"})
			continue
		}

		data, err := gh.GetBlob(ctx, repo.RepoRef, f.SHA)
		if err != nil {
			result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: err.Error()})
			continue
		}

		out, skip, err := recompress(data, f.Ext(), preset)
		switch {
		case err != nil:
			result.Failed = append(result.Failed, &model.ItemError{Path: p, Error: err.Error()})
			continue
		case skip != "":
			result.Skipped = append(result.Skipped, &model.SkippedImage{Path: p, Reason: skip})
			continue
		}

		x.backupOriginal(ctx, sess, repo, f, data)
		enqueue(sess, &model.PendingChange{
			Path:     p,
			Op:       model.PendingUpsert,
			Content:  out,
			BaseSHA:  f.SHA,
			Branch:   repo.ActiveBranch,
			Reason:   fmt.Sprintf("optimized with %s preset", preset.Name),
			QueuedAt: now,
		})
		result.Optimized = append(result.Optimized, &model.OptimizedImage{
			Path:   p,
			Before: int64(len(data)),
			After:  int64(len(out)),
		})
		result.SavedBytes += int64(len(data) - len(out))
		queued++
	}
	result.BlockedCount = len(result.Blocked)

	if queued > 0 {
		if err := x.saveSession(ctx, sess); err != nil {
			return nil, err
		}
		x.invalidate(sess, "cleanup", model.TopicPending)
	}
	active, _ := sess.SplitPending()
	result.PendingCount = len(active)

	logging.From(ctx).Info("performance cleanup queued",
		slog.String("repo", repo.FullName),
		slog.Int("deleted", len(result.Deleted)),
		slog.Int("optimized", len(result.Optimized)),
		slog.Int("blocked", result.BlockedCount),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// backupOriginal copies the current blob to object storage. data is fetched when nil. It is best
// effort: a failed backup is logged and the change is still queued.
func (x *UseCase) backupOriginal(ctx context.Context, sess *model.Session, repo *model.Repository, f *model.FileEntry, data []byte) {
	storage := x.clients.ObjectStorage()
	if storage == nil {
		return
	}

	logger := logging.From(ctx).With(slog.String("path", f.Path))
	if data == nil {
		blob, err := x.github(sess).GetBlob(ctx, repo.RepoRef, f.SHA)
		if err != nil {
			logger.Warn("failed to fetch original for backup", slog.Any("error", err))
			return
		}
		data = blob
	}

	object := backupObjectName(repo, logging.CtxTime(ctx).UTC().Format("20060102T150405Z"), f.Path)
	if err := storage.Put(ctx, object, bytes.NewReader(data)); err != nil {
		logger.Warn("failed to back up original", slog.String("object", object), slog.Any("error", err))
		return
	}
	logger.Debug("original backed up", slog.String("object", object))
}

func backupObjectName(repo *model.Repository, stamp, p string) string {
	return path.Join(repo.Owner, repo.Name, string(repo.ActiveBranch), stamp, p)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
