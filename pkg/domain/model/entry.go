package model

import (
	"bytes"
	"path"
	"regexp"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Collection is a directory of markdown entries: blog posts or static pages.
type Collection string

const (
	CollectionPosts Collection = "posts"
	CollectionPages Collection = "pages"
)

// Frontmatter holds the fields the dashboard edits. Unknown keys survive a round trip through Extra.
type Frontmatter struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	PubDate     string         `yaml:"pubDate,omitempty" json:"pubDate,omitempty"`
	UpdatedDate string         `yaml:"updatedDate,omitempty" json:"updatedDate,omitempty"`
	HeroImage   string         `yaml:"heroImage,omitempty" json:"heroImage,omitempty"`
	Author      string         `yaml:"author,omitempty" json:"author,omitempty"`
	Draft       bool           `yaml:"draft,omitempty" json:"draft"`
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// Entry is a post or page file split into frontmatter and markdown body.
type Entry struct {
	Slug        string        `json:"slug"`
	Path        string        `json:"path"`
	SHA         types.BlobSHA `json:"sha,omitempty"`
	Frontmatter Frontmatter   `json:"frontmatter"`
	Body        string        `json:"body"`
}

type EntryInput struct {
	Slug        string        `json:"slug"`
	Format      string        `json:"format,omitempty"`
	Frontmatter Frontmatter   `json:"frontmatter"`
	Body        string        `json:"body"`
	Message     string        `json:"message,omitempty"`
	BaseSHA     types.BlobSHA `json:"sha,omitempty"`
}

var ptnSlug = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

func ValidateSlug(slug string) error {
	if !ptnSlug.MatchString(slug) {
		return goerr.Wrap(types.ErrValidationFailed, "invalid slug", goerr.V("slug", slug))
	}
	return nil
}

func (x *EntryInput) Validate() error {
	if err := ValidateSlug(x.Slug); err != nil {
		return err
	}
	if strings.TrimSpace(x.Frontmatter.Title) == "" {
		return goerr.Wrap(types.ErrValidationFailed, "title is required")
	}
	switch x.Format {
	case "", "md", "mdx":
	default:
		return goerr.Wrap(types.ErrValidationFailed, "format must be md or mdx", goerr.V("format", x.Format))
	}
	return nil
}

// IsEntryFile reports whether p looks like a markdown entry.
func IsEntryFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// SlugFromPath strips directory and extension.
func SlugFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

const fmDelimiter = "---"

// ParseEntry splits raw into frontmatter and body. A file without frontmatter is all body.
func ParseEntry(p, raw string) (*Entry, error) {
	entry := &Entry{
		Slug: SlugFromPath(p),
		Path: p,
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(text, fmDelimiter+"\n") {
		entry.Body = text
		return entry, nil
	}

	rest := text[len(fmDelimiter)+1:]
	var head, body string
	if strings.HasPrefix(rest, fmDelimiter+"\n") || rest == fmDelimiter {
		head, body = "", strings.TrimPrefix(strings.TrimPrefix(rest, fmDelimiter), "\n")
	} else {
		idx := strings.Index(rest, "\n"+fmDelimiter+"\n")
		switch {
		case idx >= 0:
			head, body = rest[:idx], rest[idx+len(fmDelimiter)+2:]
		case strings.HasSuffix(rest, "\n"+fmDelimiter):
			head, body = strings.TrimSuffix(rest, "\n"+fmDelimiter), ""
		default:
			return nil, goerr.Wrap(types.ErrValidationFailed, "unterminated frontmatter", goerr.V("path", p))
		}
	}

	if err := yaml.Unmarshal([]byte(head), &entry.Frontmatter); err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid frontmatter", goerr.V("path", p), goerr.V("error", err.Error()))
	}
	entry.Body = strings.TrimPrefix(body, "\n")

	return entry, nil
}

// Render serialises the entry back to a markdown file.
func (x *Entry) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fmDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&x.Frontmatter); err != nil {
		return "", goerr.Wrap(err, "failed to encode frontmatter", goerr.V("path", x.Path))
	}
	if err := enc.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close frontmatter encoder")
	}

	buf.WriteString(fmDelimiter + "\n\n")
	buf.WriteString(strings.TrimLeft(x.Body, "\n"))
	return buf.String(), nil
}

// EntrySummary is the list view of an entry.
type EntrySummary struct {
	Slug        string        `json:"slug"`
	Path        string        `json:"path"`
	SHA         types.BlobSHA `json:"sha"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	PubDate     string        `json:"pubDate,omitempty"`
	HeroImage   string        `json:"heroImage,omitempty"`
	Draft       bool          `json:"draft"`
	Tags        []string      `json:"tags,omitempty"`
}

func (x *Entry) Summary() *EntrySummary {
	return &EntrySummary{
		Slug:        x.Slug,
		Path:        x.Path,
		SHA:         x.SHA,
		Title:       x.Frontmatter.Title,
		Description: x.Frontmatter.Description,
		PubDate:     x.Frontmatter.PubDate,
		HeroImage:   x.Frontmatter.HeroImage,
		Draft:       x.Frontmatter.Draft,
		Tags:        x.Frontmatter.Tags,
	}
}
