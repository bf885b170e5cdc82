package model

import (
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Content is a file read from the active branch. SHA is the blob SHA and acts as the reference for
// optimistic writes.
type Content struct {
	Path    string        `json:"path"`
	Content string        `json:"content"`
	SHA     types.BlobSHA `json:"sha"`
	Size    int           `json:"size"`
}

type WriteContentInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Message string `json:"message"`
	// BaseSHA is the sha the client read. Empty means last write wins.
	BaseSHA types.BlobSHA `json:"sha,omitempty"`
}

func (x *WriteContentInput) Validate() error {
	if err := ValidatePath(x.Path); err != nil {
		return err
	}
	return nil
}

type DeleteContentInput struct {
	Path    string        `json:"path"`
	Message string        `json:"message"`
	BaseSHA types.BlobSHA `json:"sha,omitempty"`
}

type WriteResult struct {
	Path      string          `json:"path"`
	SHA       types.BlobSHA   `json:"sha,omitempty"`
	CommitSHA types.CommitSHA `json:"commitSha"`
}

// FileEntry is a blob in the tree of the active branch.
type FileEntry struct {
	Path string        `json:"path"`
	SHA  types.BlobSHA `json:"sha"`
	Size int64         `json:"size"`
}

func (x *FileEntry) Ext() string {
	return strings.ToLower(path.Ext(x.Path))
}

// ValidatePath rejects absolute paths, traversal and empty segments.
func ValidatePath(p string) error {
	if p == "" {
		return goerr.Wrap(types.ErrValidationFailed, "path is empty")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return goerr.Wrap(types.ErrValidationFailed, "path must be relative", goerr.V("path", p))
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return goerr.Wrap(types.ErrValidationFailed, "invalid path segment", goerr.V("path", p))
		}
	}
	return nil
}

// PutFileInput is the GitHub side of a write. A nil SHA creates the file.
type PutFileInput struct {
	Branch  types.BranchName
	Path    string
	Content []byte
	Message string
	SHA     *types.BlobSHA
}

type DeleteFileInput struct {
	Branch  types.BranchName
	Path    string
	Message string
	SHA     types.BlobSHA
}

type GitHubUser struct {
	ID        int64  `json:"id" firestore:"id"`
	Login     string `json:"login" firestore:"login"`
	Name      string `json:"name" firestore:"name"`
	AvatarURL string `json:"avatarUrl" firestore:"avatar_url"`
}

// AuthenticatedUser is the result of verifying a token. Scopes is nil for tokens that do not report
// OAuth scopes (fine-grained tokens).
type AuthenticatedUser struct {
	GitHubUser
	Scopes []string
}

// AuditRecord is one committed change, exported to BigQuery.
type AuditRecord struct {
	ID        string    `bigquery:"id" json:"id"`
	Timestamp time.Time `bigquery:"timestamp" json:"timestamp"`
	User      string    `bigquery:"user" json:"user"`
	Repo      string    `bigquery:"repo" json:"repo"`
	Branch    string    `bigquery:"branch" json:"branch"`
	Path      string    `bigquery:"path" json:"path"`
	Operation string    `bigquery:"operation" json:"operation"`
	CommitSHA string    `bigquery:"commit_sha" json:"commit_sha"`
	Message   string    `bigquery:"message" json:"message"`
}
