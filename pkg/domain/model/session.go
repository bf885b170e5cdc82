package model

import (
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

// Session is the server-side state of one signed-in dashboard user. It is the context object every
// handler receives; nothing about the active repository lives outside of it.
type Session struct {
	ID               types.SessionID   `json:"id"`
	Token            types.GitHubToken `json:"token" masq:"secret"`
	User             GitHubUser        `json:"user"`
	Scopes           []string          `json:"scopes,omitempty"`
	ActiveRepository *Repository       `json:"activeRepository,omitempty"`
	Pending          []*PendingChange  `json:"pending,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	ExpiresAt        time.Time         `json:"expiresAt"`
	// Version is the revision the copy was loaded at. Stores refuse to overwrite a newer revision.
	Version int64 `json:"version"`
}

func (x *Session) Expired(now time.Time) bool {
	return !x.ExpiresAt.IsZero() && now.After(x.ExpiresAt)
}

// Copy returns a deep copy so stores never share mutable state with callers.
func (x *Session) Copy() *Session {
	if x == nil {
		return nil
	}
	c := *x
	c.Scopes = append([]string(nil), x.Scopes...)
	if x.ActiveRepository != nil {
		repo := *x.ActiveRepository
		c.ActiveRepository = &repo
	}
	c.Pending = make([]*PendingChange, 0, len(x.Pending))
	for _, p := range x.Pending {
		pc := *p
		pc.Content = append([]byte(nil), p.Content...)
		c.Pending = append(c.Pending, &pc)
	}
	return &c
}

// SessionView is what the API exposes about a session.
type SessionView struct {
	User             GitHubUser  `json:"user"`
	Scopes           []string    `json:"scopes,omitempty"`
	ActiveRepository *Repository `json:"activeRepository"`
	PendingCount     int         `json:"pendingCount"`
	ExpiresAt        time.Time   `json:"expiresAt"`
}

// SplitPending separates the changes queued for the active branch from those of other branches.
// Without an active repository nothing is active.
func (x *Session) SplitPending() (active, others []*PendingChange) {
	for _, p := range x.Pending {
		if x.ActiveRepository != nil && p.Branch == x.ActiveRepository.ActiveBranch {
			active = append(active, p)
		} else {
			others = append(others, p)
		}
	}
	return active, others
}

func (x *Session) View() *SessionView {
	active, _ := x.SplitPending()
	return &SessionView{
		User:             x.User,
		Scopes:           x.Scopes,
		ActiveRepository: x.ActiveRepository,
		PendingCount:     len(active),
		ExpiresAt:        x.ExpiresAt,
	}
}

type PendingOp string

const (
	PendingUpsert PendingOp = "upsert"
	PendingDelete PendingOp = "delete"
)

// PendingChange is a queued file change waiting for a batched commit.
type PendingChange struct {
	Path     string           `json:"path"`
	Op       PendingOp        `json:"op"`
	Content  []byte           `json:"content,omitempty"`
	BaseSHA  types.BlobSHA    `json:"baseSha,omitempty"`
	Branch   types.BranchName `json:"branch"`
	Reason   string           `json:"reason,omitempty"`
	QueuedAt time.Time        `json:"queuedAt"`
}

// PendingChangeView omits content bytes.
type PendingChangeView struct {
	Path     string           `json:"path"`
	Op       PendingOp        `json:"op"`
	Size     int              `json:"size"`
	Branch   types.BranchName `json:"branch"`
	Reason   string           `json:"reason,omitempty"`
	QueuedAt time.Time        `json:"queuedAt"`
}

func (x *PendingChange) View() *PendingChangeView {
	return &PendingChangeView{
		Path:     x.Path,
		Op:       x.Op,
		Size:     len(x.Content),
		Branch:   x.Branch,
		Reason:   x.Reason,
		QueuedAt: x.QueuedAt,
	}
}

type CommitPendingInput struct {
	Message string `json:"message"`
}

type CommitPendingResult struct {
	Committed []*WriteResult `json:"committed"`
	Failed    []*ItemError   `json:"failed"`
	Remaining int            `json:"remaining"`
}

// ItemError reports the failure of one item of a batch.
type ItemError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
