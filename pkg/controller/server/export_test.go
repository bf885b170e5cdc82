package server

var (
	StatusOfForTest          = statusOf
	RefToBranchForTest       = refToBranch
	GitHubEventToPushForTest = githubEventToPush
)
