package usecase

import (
	"time"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra"
)

type UseCase struct {
	clients        *infra.Clients
	cache          *cache.Cache
	layout         model.SiteLayout
	templateBranch types.BranchName
	sessionTTL     time.Duration
	scanLimit      int
}

var _ interfaces.UseCase = &UseCase{}

type Option func(*UseCase)

func WithCache(c *cache.Cache) Option {
	return func(x *UseCase) {
		x.cache = c
	}
}

func WithLayout(layout model.SiteLayout) Option {
	return func(x *UseCase) {
		x.layout = layout
	}
}

// WithTemplateBranch overrides the branch new site branches are created from. The repository's
// default branch is used when neither this option nor the layout names one.
func WithTemplateBranch(branch types.BranchName) Option {
	return func(x *UseCase) {
		x.templateBranch = branch
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(x *UseCase) {
		x.sessionTTL = ttl
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	x := &UseCase{
		clients:    clients,
		layout:     model.DefaultSiteLayout(),
		sessionTTL: 7 * 24 * time.Hour,
		scanLimit:  8,
	}
	for _, opt := range options {
		opt(x)
	}
	if x.cache == nil {
		x.cache = cache.New()
	}
	if x.templateBranch == "" && x.layout.TemplateBranch != "" {
		x.templateBranch = types.BranchName(x.layout.TemplateBranch)
	}
	return x
}

func (x *UseCase) Layout() model.SiteLayout {
	return x.layout
}
