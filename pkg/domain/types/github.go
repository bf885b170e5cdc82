package types

import "log/slog"

type (
	GitHubToken             string
	GitHubOAuthClientID     string
	GitHubOAuthClientSecret string
	GitHubWebhookSecret     string
	BranchName              string
	CommitSHA               string
	BlobSHA                 string
)

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubOAuthClientSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubOAuthClientSecret) String() string {
	return "***********"
}

func (x GitHubWebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubWebhookSecret) String() string {
	return "***********"
}

func (x BranchName) String() string { return string(x) }
func (x CommitSHA) String() string  { return string(x) }
func (x BlobSHA) String() string    { return string(x) }
