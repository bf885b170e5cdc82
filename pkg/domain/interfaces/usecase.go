package interfaces

import (
	"context"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

type UseCase interface {
	// Sessions
	LoginWithToken(ctx context.Context, token types.GitHubToken) (*model.Session, error)
	OAuthLoginURL(state string) (string, error)
	LoginWithOAuthCode(ctx context.Context, code string) (*model.Session, error)
	LookupSession(ctx context.Context, id types.SessionID) (*model.Session, error)
	Logout(ctx context.Context, id types.SessionID) error
	SubscribeInvalidation(sess *model.Session) (<-chan model.InvalidationEvent, func())

	// Repository connector
	ConnectRepository(ctx context.Context, sess *model.Session, input *model.ConnectRepositoryInput) (*model.ConnectRepositoryResult, error)
	DisconnectRepository(ctx context.Context, sess *model.Session) error
	SyncRepository(ctx context.Context, sess *model.Session) (*model.Repository, error)
	ListGitHubRepositories(ctx context.Context, sess *model.Session) ([]*model.GitHubRepository, error)

	// Branch/site manager
	ListBranches(ctx context.Context, sess *model.Session) ([]*model.Branch, error)
	CreateBranch(ctx context.Context, sess *model.Session, input *model.CreateBranchInput) (*model.Branch, error)
	SwitchBranch(ctx context.Context, sess *model.Session, input *model.SwitchBranchInput) (*model.Repository, error)

	// Content
	ListFiles(ctx context.Context, sess *model.Session, dir string) ([]*model.FileEntry, error)
	ReadContent(ctx context.Context, sess *model.Session, path string) (*model.Content, error)
	WriteContent(ctx context.Context, sess *model.Session, input *model.WriteContentInput) (*model.WriteResult, error)
	DeleteContent(ctx context.Context, sess *model.Session, input *model.DeleteContentInput) (*model.WriteResult, error)

	ListEntries(ctx context.Context, sess *model.Session, collection model.Collection) ([]*model.EntrySummary, error)
	GetEntry(ctx context.Context, sess *model.Session, collection model.Collection, slug string) (*model.Entry, error)
	CreateEntry(ctx context.Context, sess *model.Session, collection model.Collection, input *model.EntryInput) (*model.Entry, error)
	UpdateEntry(ctx context.Context, sess *model.Session, collection model.Collection, input *model.EntryInput) (*model.Entry, error)
	DeleteEntry(ctx context.Context, sess *model.Session, collection model.Collection, slug string, input *model.DeleteContentInput) (*model.WriteResult, error)

	// Settings
	GetBranding(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Branding], error)
	PutBranding(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Branding]) (*model.SettingsDocument[model.Branding], error)
	GetNavigation(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Navigation], error)
	PutNavigation(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Navigation]) (*model.SettingsDocument[model.Navigation], error)
	GetTheme(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.Theme], error)
	PutTheme(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.Theme]) (*model.SettingsDocument[model.Theme], error)
	GetAdSense(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.AdSense], error)
	PutAdSense(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.AdSense]) (*model.SettingsDocument[model.AdSense], error)
	GetContentDefaults(ctx context.Context, sess *model.Session) (*model.SettingsDocument[model.ContentDefaults], error)
	PutContentDefaults(ctx context.Context, sess *model.Session, input *model.SettingsInput[model.ContentDefaults]) (*model.SettingsDocument[model.ContentDefaults], error)

	// Performance and pending changes
	AnalyzePerformance(ctx context.Context, sess *model.Session) (*model.PerformanceReport, error)
	CleanupPerformance(ctx context.Context, sess *model.Session, input *model.CleanupInput) (*model.CleanupResult, error)
	ListPending(ctx context.Context, sess *model.Session) ([]*model.PendingChangeView, error)
	DiscardPending(ctx context.Context, sess *model.Session) (int, error)
	CommitPending(ctx context.Context, sess *model.Session, input *model.CommitPendingInput) (*model.CommitPendingResult, error)

	// Deployment and insights
	CloneRepository(ctx context.Context, sess *model.Session, input *model.CloneRepositoryInput) (*model.CloneRepositoryResult, error)
	Deploy(ctx context.Context, sess *model.Session) (*model.DeployResult, error)
	AnalyzePageSpeed(ctx context.Context, input *model.PageSpeedInput) (*model.PageSpeedReport, error)
	QuerySearchPerformance(ctx context.Context, input *model.SearchPerformanceInput) (*model.SearchPerformance, error)

	// Webhook
	HandlePush(ctx context.Context, event *model.PushEvent) error
}
