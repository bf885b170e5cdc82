package model

import (
	"path"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SiteLayout describes where an Astro blog keeps its content.
type SiteLayout struct {
	PostsDir  string `toml:"posts_dir" json:"postsDir"`
	PagesDir  string `toml:"pages_dir" json:"pagesDir"`
	ConfigDir string `toml:"config_dir" json:"configDir"`
	// SiteFile is the descriptor committed to site branches, relative to ConfigDir.
	SiteFile        string   `toml:"site_file" json:"siteFile"`
	ImageDirs       []string `toml:"image_dirs" json:"imageDirs"`
	PublicDir       string   `toml:"public_dir" json:"publicDir"`
	SourceDir       string   `toml:"source_dir" json:"sourceDir"`
	ImageExts       []string `toml:"image_exts" json:"imageExts"`
	ReferenceExts   []string `toml:"reference_exts" json:"referenceExts"`
	OptimizeMinSize int64    `toml:"optimize_min_size" json:"optimizeMinSize"`
	TemplateBranch  string   `toml:"template_branch" json:"templateBranch"`
}

func DefaultSiteLayout() SiteLayout {
	return SiteLayout{
		PostsDir:        "src/content/blog",
		PagesDir:        "src/content/pages",
		ConfigDir:       "src/config",
		SiteFile:        "site.json",
		ImageDirs:       []string{"public", "src/assets"},
		PublicDir:       "public",
		SourceDir:       "src",
		ImageExts:       []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg"},
		ReferenceExts:   []string{".md", ".mdx", ".astro", ".json", ".yaml", ".yml", ".ts", ".js", ".mjs", ".html", ".css"},
		OptimizeMinSize: 200 * 1024,
	}
}

func (x SiteLayout) Validate() error {
	for name, dir := range map[string]string{
		"posts_dir":  x.PostsDir,
		"pages_dir":  x.PagesDir,
		"config_dir": x.ConfigDir,
	} {
		if err := ValidatePath(dir); err != nil {
			return goerr.Wrap(types.ErrInvalidOption, "invalid layout directory", goerr.V("field", name), goerr.V("value", dir))
		}
	}
	if len(x.ImageDirs) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "image_dirs must not be empty")
	}
	if x.OptimizeMinSize < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "optimize_min_size must not be negative")
	}
	return nil
}

func (x SiteLayout) CollectionDir(c Collection) (string, error) {
	switch c {
	case CollectionPosts:
		return x.PostsDir, nil
	case CollectionPages:
		return x.PagesDir, nil
	}
	return "", goerr.Wrap(types.ErrValidationFailed, "unknown collection", goerr.V("collection", c))
}

func (x SiteLayout) SettingsPath(kind SettingsKind) string {
	return path.Join(x.ConfigDir, kind.FileName())
}

func (x SiteLayout) SiteDescriptorPath() string {
	return path.Join(x.ConfigDir, x.SiteFile)
}

func (x SiteLayout) IsImage(p string) bool {
	if !hasDirPrefix(p, x.ImageDirs) {
		return false
	}
	return hasExt(p, x.ImageExts)
}

func (x SiteLayout) IsReferenceSource(p string) bool {
	return hasExt(p, x.ReferenceExts)
}

// ReferenceForms returns the strings content uses to point at an image stored at p.
func (x SiteLayout) ReferenceForms(p string) []string {
	forms := []string{p}
	if x.PublicDir != "" && strings.HasPrefix(p, x.PublicDir+"/") {
		forms = append(forms, strings.TrimPrefix(p, x.PublicDir))
	}
	if x.SourceDir != "" && strings.HasPrefix(p, x.SourceDir+"/") {
		forms = append(forms, strings.TrimPrefix(p, x.SourceDir+"/"))
	}
	return forms
}

func hasDirPrefix(p string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, strings.TrimSuffix(d, "/")+"/") {
			return true
		}
	}
	return false
}

func hasExt(p string, exts []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
