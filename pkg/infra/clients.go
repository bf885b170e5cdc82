package infra

import (
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
)

// Clients bundles the external collaborators. Optional ones are nil when not configured.
type Clients struct {
	github            interfaces.GitHub
	oauth             interfaces.OAuth
	vercel            interfaces.Vercel
	pageSpeed         interfaces.PageSpeed
	searchConsole     interfaces.SearchConsole
	auditLog          interfaces.AuditLog
	objectStorage     interfaces.ObjectStorage
	sessionRepository interfaces.SessionRepository
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) OAuth() interfaces.OAuth {
	return x.oauth
}
func (x *Clients) Vercel() interfaces.Vercel {
	return x.vercel
}
func (x *Clients) PageSpeed() interfaces.PageSpeed {
	return x.pageSpeed
}
func (x *Clients) SearchConsole() interfaces.SearchConsole {
	return x.searchConsole
}
func (x *Clients) AuditLog() interfaces.AuditLog {
	return x.auditLog
}
func (x *Clients) ObjectStorage() interfaces.ObjectStorage {
	return x.objectStorage
}
func (x *Clients) SessionRepository() interfaces.SessionRepository {
	return x.sessionRepository
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithOAuth(client interfaces.OAuth) Option {
	return func(x *Clients) {
		x.oauth = client
	}
}

func WithVercel(client interfaces.Vercel) Option {
	return func(x *Clients) {
		x.vercel = client
	}
}

func WithPageSpeed(client interfaces.PageSpeed) Option {
	return func(x *Clients) {
		x.pageSpeed = client
	}
}

func WithSearchConsole(client interfaces.SearchConsole) Option {
	return func(x *Clients) {
		x.searchConsole = client
	}
}

func WithAuditLog(client interfaces.AuditLog) Option {
	return func(x *Clients) {
		x.auditLog = client
	}
}

func WithObjectStorage(client interfaces.ObjectStorage) Option {
	return func(x *Clients) {
		x.objectStorage = client
	}
}

func WithSessionRepository(repo interfaces.SessionRepository) Option {
	return func(x *Clients) {
		x.sessionRepository = repo
	}
}
