package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub GitHubClient OAuth Vercel PageSpeed SearchConsole AuditLog ObjectStorage

import (
	"context"
	"io"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

// GitHub builds API clients bound to a user's token.
type GitHub interface {
	NewClient(token types.GitHubToken) GitHubClient
}

// GitHubClient is the Content Sync Client plus the repository and branch calls the dashboard needs.
// Errors wrap types.ErrNotFound, ErrForbidden, ErrUnauthorized, ErrConflict or ErrUpstream.
type GitHubClient interface {
	GetAuthenticatedUser(ctx context.Context) (*model.AuthenticatedUser, error)
	ListRepositories(ctx context.Context) ([]*model.GitHubRepository, error)
	GetRepository(ctx context.Context, repo model.RepoRef) (*model.GitHubRepository, error)
	CreateFromTemplate(ctx context.Context, input *model.CreateFromTemplateInput) (*model.GitHubRepository, error)

	ListBranches(ctx context.Context, repo model.RepoRef) ([]types.BranchName, error)
	GetBranchHead(ctx context.Context, repo model.RepoRef, branch types.BranchName) (types.CommitSHA, error)
	CreateBranch(ctx context.Context, repo model.RepoRef, branch types.BranchName, from types.CommitSHA) error

	// ListFiles returns every blob of the branch tree. truncated is true when GitHub cut the listing.
	ListFiles(ctx context.Context, repo model.RepoRef, branch types.BranchName) (files []*model.FileEntry, truncated bool, err error)
	GetContent(ctx context.Context, repo model.RepoRef, branch types.BranchName, path string) (*model.Content, error)
	GetBlob(ctx context.Context, repo model.RepoRef, sha types.BlobSHA) ([]byte, error)
	PutFile(ctx context.Context, repo model.RepoRef, input *model.PutFileInput) (*model.WriteResult, error)
	DeleteFile(ctx context.Context, repo model.RepoRef, input *model.DeleteFileInput) (*model.WriteResult, error)
}

type OAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (types.GitHubToken, error)
}

type Vercel interface {
	LinkProject(ctx context.Context, input *model.LinkProjectInput) (*model.VercelProject, error)
	AddDomain(ctx context.Context, project, domain string) error
	CreateDeployment(ctx context.Context, input *model.CreateDeploymentInput) (*model.VercelDeployment, error)
}

type PageSpeed interface {
	Analyze(ctx context.Context, input *model.PageSpeedInput) (*model.PageSpeedReport, error)
}

type SearchConsole interface {
	QueryPerformance(ctx context.Context, input *model.SearchPerformanceInput) (*model.SearchPerformance, error)
}

// AuditLog records committed changes.
type AuditLog interface {
	Insert(ctx context.Context, records []*model.AuditRecord) error
}

// ObjectStorage keeps copies of images before they are replaced or deleted.
type ObjectStorage interface {
	Put(ctx context.Context, object string, r io.Reader) error
}
