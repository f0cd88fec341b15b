package config

import (
	"fmt"
	"time"
)

// Config represents an indigo.yaml configuration file.
// All values are optional and act as defaults for indigo command flags.
// CLI flags always override config values.
type Config struct {
	Socket    string        `yaml:"socket"`
	Device    string        `yaml:"device"`
	SessionID string        `yaml:"session_id"`
	Header    HeaderConfig  `yaml:"header"`
	Strict    bool          `yaml:"strict"`
	Record    RecordConfig  `yaml:"record"`
	Replay    ReplayConfig  `yaml:"replay"`
	Adapter   AdapterConfig `yaml:"adapter"`
}

// HeaderConfig holds mach header defaults from the config file.
// Zero ports are valid wire values; Bits zero falls back to the
// session default.
type HeaderConfig struct {
	Bits        uint32 `yaml:"bits"`
	RemotePort  uint32 `yaml:"remote_port"`
	LocalPort   uint32 `yaml:"local_port"`
	VoucherPort uint32 `yaml:"voucher_port"`
	MessageID   int32  `yaml:"message_id"`
}

// RecordConfig holds recording defaults from the config file.
type RecordConfig struct {
	// Path is the local recording file. Empty disables recording.
	Path string `yaml:"path"`
	// BufferMessages and BufferBytes are recorder flush thresholds.
	BufferMessages int   `yaml:"buffer_messages"`
	BufferBytes    int64 `yaml:"buffer_bytes"`

	// Archive controls S3 upload of finished recordings.
	Archive ArchiveConfig `yaml:"archive"`
}

// ArchiveConfig holds S3 archive settings from the config file.
type ArchiveConfig struct {
	// Bucket enables archiving when set. May carry a prefix as
	// "bucket/prefix" when Prefix is empty.
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// ReplayConfig holds replay defaults from the config file.
type ReplayConfig struct {
	// Speed scales recorded inter-message delays. Zero means flat out.
	Speed float64 `yaml:"speed"`
}

// AdapterConfig holds session-report adapter defaults from the config file.
type AdapterConfig struct {
	Type    string            `yaml:"type"` // webhook or redis
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
