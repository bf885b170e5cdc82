package model

import "github.com/m-mizutani/astrodash/pkg/domain/types"

// PushEvent is the part of a GitHub push delivery the dashboard reacts to.
type PushEvent struct {
	Repo     RepoRef
	Branch   types.BranchName
	HeadSHA  types.CommitSHA
	Pusher   string
	Modified []string
}
