package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

// SessionID identifies a server-side dashboard session. The cookie only carries this value.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

func (x SessionID) String() string { return string(x) }

func (x SessionID) LogValue() slog.Value {
	if len(x) <= 8 {
		return slog.StringValue(string(x))
	}
	return slog.StringValue(string(x[:8]) + "...")
}

type (
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
	GCSBucket       string
	VercelToken     string
	GoogleAPIKey    string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }
func (x GCSBucket) String() string       { return string(x) }

func (x VercelToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x VercelToken) String() string {
	return "***********"
}

func (x GoogleAPIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GoogleAPIKey) String() string {
	return "***********"
}
