// Package adapter defines the boundary for publishing session reports
// to downstream systems.
//
// Adapters publish a summary when an injection session finishes. The
// CLI owns adapter lifecycle; users provide configuration only.
package adapter

import (
	"context"
	"time"

	"github.com/simforge-io/indigo/metrics"
)

// ReportVersion is the report payload version.
const ReportVersion = "1"

// SessionReport is the payload published when a session finishes.
type SessionReport struct {
	ReportVersion string `json:"report_version"`
	EventType     string `json:"event_type"` // always "session_completed"
	SessionID     string `json:"session_id"`
	Device        string `json:"device"`
	Transport     string `json:"transport"`
	Timestamp     string `json:"timestamp"` // ISO 8601

	MessagesSent  int64 `json:"messages_sent"`
	BytesSent     int64 `json:"bytes_sent"`
	SendFailures  int64 `json:"send_failures"`
	EventsEncoded int64 `json:"events_encoded"`
	UnknownCodes  int64 `json:"unknown_codes"`

	// RecordingPath is the local recording file or S3 key, if any.
	RecordingPath string `json:"recording_path,omitempty"`
	DurationMs    int64  `json:"duration_ms"`
}

// NewSessionReport builds a report from a metrics snapshot.
func NewSessionReport(snap metrics.Snapshot, recordingPath string, duration time.Duration) *SessionReport {
	return &SessionReport{
		ReportVersion: ReportVersion,
		EventType:     "session_completed",
		SessionID:     snap.SessionID,
		Device:        snap.Device,
		Transport:     snap.Transport,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		MessagesSent:  snap.MessagesSent,
		BytesSent:     snap.BytesSent,
		SendFailures:  snap.SendFailures,
		EventsEncoded: snap.EventsEncoded,
		UnknownCodes:  snap.UnknownCodes,
		RecordingPath: recordingPath,
		DurationMs:    duration.Milliseconds(),
	}
}

// Adapter publishes session reports to a downstream system.
// Implementations must be safe for single-use per session.
type Adapter interface {
	// Publish sends a session report to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, report *SessionReport) error

	// Close releases adapter resources.
	Close() error
}
