package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SiteBranchPrefix is prepended to every branch derived from a domain.
const SiteBranchPrefix = "site-"

// Branch is a branch of the connected repository. The template branch is the source of new site
// branches; site branches hold a single domain's customised copy of the blog.
type Branch struct {
	Name       types.BranchName `json:"name"`
	IsTemplate bool             `json:"isTemplate"`
	IsActive   bool             `json:"isActive"`
	Domain     *string          `json:"domain"`
	HeadSHA    types.CommitSHA  `json:"headSha,omitempty"`
}

var (
	ptnDomain      = regexp.MustCompile(`^[A-Za-z0-9.-]{1,253}$`)
	ptnNonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
)

// BranchNameFromDomain derives the site branch name for domain. The result depends on domain only.
func BranchNameFromDomain(domain string) (types.BranchName, error) {
	d := strings.TrimSpace(domain)
	if !ptnDomain.MatchString(d) {
		return "", goerr.Wrap(types.ErrValidationFailed, "invalid domain", goerr.V("domain", domain))
	}

	slug := strings.Trim(ptnNonAlphaNum.ReplaceAllString(strings.ToLower(d), "-"), "-")
	if slug == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "domain has no alphanumeric characters", goerr.V("domain", domain))
	}

	return types.BranchName(SiteBranchPrefix + slug), nil
}

// SiteDescriptor is committed to every site branch so the domain can be recovered from the branch.
type SiteDescriptor struct {
	Domain string `json:"domain"`
}

type CreateBranchInput struct {
	Domain string `json:"domain"`
}

type SwitchBranchInput struct {
	Name types.BranchName `json:"name"`
}
