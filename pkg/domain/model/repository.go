package model

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RepoRef is the owner/name pair every GitHub call is addressed to.
type RepoRef struct {
	Owner string `json:"owner" firestore:"owner"`
	Name  string `json:"name" firestore:"name"`
}

func (x RepoRef) FullName() string {
	return x.Owner + "/" + x.Name
}

func (x RepoRef) Validate() error {
	if !ptnOwner.MatchString(x.Owner) {
		return goerr.Wrap(types.ErrValidationFailed, "invalid repository owner", goerr.V("owner", x.Owner))
	}
	if !ptnRepoName.MatchString(x.Name) || x.Name == "." || x.Name == ".." {
		return goerr.Wrap(types.ErrValidationFailed, "invalid repository name", goerr.V("name", x.Name))
	}
	return nil
}

// Repository is the repository connected to a session. ActiveBranch scopes every content read and write.
type Repository struct {
	RepoRef
	FullName       string           `json:"fullName" firestore:"full_name"`
	DefaultBranch  types.BranchName `json:"defaultBranch" firestore:"default_branch"`
	TemplateBranch types.BranchName `json:"templateBranch" firestore:"template_branch"`
	ActiveBranch   types.BranchName `json:"activeBranch" firestore:"active_branch"`
	Private        bool             `json:"private" firestore:"private"`
	HTMLURL        string           `json:"htmlUrl" firestore:"html_url"`
	LastSynced     time.Time        `json:"lastSynced" firestore:"last_synced"`
}

var (
	ptnOwner    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)
	ptnRepoName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// ParseRepoIdentifier accepts "owner/repo", "https://github.com/owner/repo[.git][/...]" and
// "git@github.com:owner/repo.git".
func ParseRepoIdentifier(identifier string) (RepoRef, error) {
	v := strings.TrimSpace(identifier)
	if v == "" {
		return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "repository identifier is empty")
	}

	var path string
	switch {
	case strings.HasPrefix(v, "git@"):
		host, p, ok := strings.Cut(strings.TrimPrefix(v, "git@"), ":")
		if !ok || !isGitHubHost(host) {
			return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "unsupported git remote", goerr.V("identifier", identifier))
		}
		path = p

	case strings.Contains(v, "://"):
		u, err := url.Parse(v)
		if err != nil {
			return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "invalid repository URL", goerr.V("identifier", identifier))
		}
		if !isGitHubHost(u.Hostname()) {
			return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "not a GitHub URL", goerr.V("host", u.Hostname()))
		}
		path = u.Path

	case strings.HasPrefix(v, "github.com/"), strings.HasPrefix(v, "www.github.com/"):
		_, path, _ = strings.Cut(v, "/")

	default:
		path = v
		if strings.Count(path, "/") != 1 {
			return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "expected owner/repo", goerr.V("identifier", identifier))
		}
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return RepoRef{}, goerr.Wrap(types.ErrValidationFailed, "expected owner/repo", goerr.V("identifier", identifier))
	}

	ref := RepoRef{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}
	if err := ref.Validate(); err != nil {
		return RepoRef{}, err
	}
	return ref, nil
}

func isGitHubHost(host string) bool {
	host = strings.ToLower(host)
	return host == "github.com" || host == "www.github.com"
}

// GitHubRepository is a repository as reported by the GitHub API.
type GitHubRepository struct {
	RepoRef
	ID            int64            `json:"id"`
	FullName      string           `json:"fullName"`
	Description   string           `json:"description"`
	DefaultBranch types.BranchName `json:"defaultBranch"`
	Private       bool             `json:"private"`
	IsTemplate    bool             `json:"isTemplate"`
	CanPush       bool             `json:"canPush"`
	HTMLURL       string           `json:"htmlUrl"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type ConnectRepositoryInput struct {
	Identifier     string `json:"identifier"`
	LinkDeployment bool   `json:"linkDeployment"`
}

type ConnectRepositoryResult struct {
	Repository *Repository `json:"repository"`
	// Warnings carries failures of best-effort steps (deployment linkage).
	Warnings []string `json:"warnings,omitempty"`
}
