// Package cmd provides CLI commands for the indigo binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags.
var (
	// ConfigFlag points at an indigo.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to indigo.yaml config file",
	}

	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// SocketFlag is the injection endpoint socket path.
	SocketFlag = &cli.StringFlag{
		Name:    "socket",
		Aliases: []string{"s"},
		Usage:   "Unix socket path of the injection endpoint",
	}

	// DeviceFlag labels the target device in logs and reports.
	DeviceFlag = &cli.StringFlag{
		Name:  "device",
		Usage: "Target device identifier",
	}

	// SessionIDFlag labels the session in logs, metrics, recordings.
	SessionIDFlag = &cli.StringFlag{
		Name:  "session-id",
		Usage: "Session identifier (default: generated)",
	}

	// RecordFlag enables recording to the given file.
	RecordFlag = &cli.StringFlag{
		Name:  "record",
		Usage: "Record sent messages to this file",
	}

	// StrictFlag rejects touch coordinates outside [0,1].
	StrictFlag = &cli.BoolFlag{
		Name:  "strict",
		Usage: "Reject touch coordinates outside [0.0, 1.0]",
	}

	// MessageIDFlag overrides the header message id.
	MessageIDFlag = &cli.IntFlag{
		Name:  "message-id",
		Usage: "Header message id stamped on every message",
	}
)

// SessionFlags returns the flags shared by every injecting command.
func SessionFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		SocketFlag,
		DeviceFlag,
		SessionIDFlag,
		RecordFlag,
		StrictFlag,
		MessageIDFlag,
	}
}

// ReadOnlyFlags returns the flags shared by read-only commands.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
	}
}
