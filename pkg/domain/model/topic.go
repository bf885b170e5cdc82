package model

// Topic groups cached resources that are invalidated together.
type Topic string

const (
	TopicRepository Topic = "repository"
	TopicBranches   Topic = "branches"
	TopicPosts      Topic = "posts"
	TopicPages      Topic = "pages"
	TopicFiles      Topic = "files"
	TopicSettings   Topic = "settings"
	TopicTheme      Topic = "theme"
	TopicAds        Topic = "ads"
	TopicPending    Topic = "pending"
)

// BranchScopedTopics are refetched whenever the active branch changes.
var BranchScopedTopics = []Topic{
	TopicPosts,
	TopicPages,
	TopicFiles,
	TopicSettings,
	TopicTheme,
	TopicAds,
}

// AllTopics is used on connect, disconnect and sync.
var AllTopics = append([]Topic{TopicRepository, TopicBranches, TopicPending}, BranchScopedTopics...)

// InvalidationEvent tells subscribers which resources must be refetched.
type InvalidationEvent struct {
	Scope  string  `json:"-"`
	Repo   string  `json:"repo,omitempty"`
	Branch string  `json:"branch,omitempty"`
	Topics []Topic `json:"topics"`
	Reason string  `json:"reason,omitempty"`
}
