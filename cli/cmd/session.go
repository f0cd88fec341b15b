package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/adapter"
	"github.com/simforge-io/indigo/adapter/redis"
	"github.com/simforge-io/indigo/adapter/webhook"
	"github.com/simforge-io/indigo/cli/config"
	"github.com/simforge-io/indigo/log"
	"github.com/simforge-io/indigo/metrics"
	"github.com/simforge-io/indigo/record"
	"github.com/simforge-io/indigo/session"
	"github.com/simforge-io/indigo/transport"
)

// defaultConfigPath is consulted when --config is not given.
const defaultConfigPath = "indigo.yaml"

// sessionEnv bundles a live session with the resources behind it.
// Commands run their action, then call finish to flush, archive, and
// report.
type sessionEnv struct {
	Session *session.Session
	Logger  *log.Logger

	cfg        *config.Config
	recorder   *record.Recorder
	recordPath string
	started    time.Time
}

// loadConfig reads the config file named by --config, or indigo.yaml
// in the working directory when present. Flags override file values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else {
			return &config.Config{}, nil
		}
	}
	return config.Load(path)
}

// mergeFlags applies command-line overrides onto file config.
func mergeFlags(c *cli.Context, cfg *config.Config) {
	if v := c.String("socket"); v != "" {
		cfg.Socket = v
	}
	if v := c.String("device"); v != "" {
		cfg.Device = v
	}
	if v := c.String("session-id"); v != "" {
		cfg.SessionID = v
	}
	if v := c.String("record"); v != "" {
		cfg.Record.Path = v
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("message-id") {
		cfg.Header.MessageID = int32(c.Int("message-id"))
	}
}

// newSessionEnv dials the endpoint and assembles a session from config
// plus flags.
func newSessionEnv(c *cli.Context) (*sessionEnv, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	mergeFlags(c, cfg)

	if cfg.Socket == "" {
		return nil, fmt.Errorf("no socket: pass --socket or set socket in %s", defaultConfigPath)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = fmt.Sprintf("sess-%d", time.Now().UnixMilli())
	}

	logger := log.NewLogger(log.Context{
		SessionID: cfg.SessionID,
		Device:    cfg.Device,
		Transport: "unix",
	})

	conn, err := transport.Dial(cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Socket, err)
	}

	env := &sessionEnv{cfg: cfg, Logger: logger, started: time.Now()}

	var rec session.Recorder
	if cfg.Record.Path != "" {
		sink, err := record.CreateFile(cfg.Record.Path)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		rcfg := record.DefaultRecorderConfig()
		if cfg.Record.BufferMessages > 0 {
			rcfg.MaxBufferMessages = cfg.Record.BufferMessages
		}
		if cfg.Record.BufferBytes > 0 {
			rcfg.MaxBufferBytes = cfg.Record.BufferBytes
		}
		rcfg.Logger = logger
		recorder, err := record.NewRecorder(sink, rcfg)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		env.recorder = recorder
		env.recordPath = cfg.Record.Path
		rec = recorder
	}

	sess, err := session.New(session.Config{
		SessionID:   cfg.SessionID,
		Device:      cfg.Device,
		Bits:        cfg.Header.Bits,
		RemotePort:  cfg.Header.RemotePort,
		LocalPort:   cfg.Header.LocalPort,
		VoucherPort: cfg.Header.VoucherPort,
		MessageID:   cfg.Header.MessageID,
		StrictTouch: cfg.Strict,
		Conn:        conn,
		Logger:      logger,
		Metrics:     metrics.NewCollector("unix", cfg.Device, cfg.SessionID),
		Recorder:    rec,
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	env.Session = sess
	return env, nil
}

// finish closes the session, flushes the recording, archives it when
// configured, and publishes the session report. The session's metrics
// snapshot is returned for rendering.
func (e *sessionEnv) finish(ctx context.Context) (metrics.Snapshot, error) {
	snap := e.Session.Metrics()
	if err := e.Session.Close(); err != nil {
		return snap, err
	}

	recordingPath := e.recordPath
	if e.recorder != nil {
		if err := e.recorder.Close(); err != nil {
			return snap, fmt.Errorf("close recording: %w", err)
		}
		if key, err := e.archive(ctx); err != nil {
			// Local recording survives; report the upload failure.
			e.Logger.Error("archive failed", map[string]any{"error": err.Error()})
		} else if key != "" {
			recordingPath = key
		}
	}

	if err := e.publishReport(ctx, snap, recordingPath); err != nil {
		e.Logger.Error("report failed", map[string]any{"error": err.Error()})
	}

	_ = e.Logger.Sync()
	return snap, nil
}

// archive uploads the finished recording when a bucket is configured.
func (e *sessionEnv) archive(ctx context.Context) (string, error) {
	ac := e.cfg.Record.Archive
	if ac.Bucket == "" {
		return "", nil
	}

	bucket, prefix := ac.Bucket, ac.Prefix
	if prefix == "" {
		bucket, prefix = record.ParseS3Path(ac.Bucket)
	}
	archiver, err := record.NewArchiver(ctx, record.S3Config{
		Bucket:       bucket,
		Prefix:       prefix,
		Region:       ac.Region,
		Endpoint:     ac.Endpoint,
		UsePathStyle: ac.S3PathStyle,
	})
	if err != nil {
		return "", err
	}
	return archiver.ArchiveFile(ctx, e.cfg.SessionID, e.recordPath)
}

// publishReport sends the session report through the configured adapter.
func (e *sessionEnv) publishReport(ctx context.Context, snap metrics.Snapshot, recordingPath string) error {
	a, err := buildAdapter(e.cfg.Adapter)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	defer func() { _ = a.Close() }()

	report := adapter.NewSessionReport(snap, recordingPath, time.Since(e.started))
	return a.Publish(ctx, report)
}

// buildAdapter constructs the configured report adapter, or nil when
// none is configured.
func buildAdapter(ac config.AdapterConfig) (adapter.Adapter, error) {
	retries := -1
	if ac.Retries != nil {
		retries = *ac.Retries
	}

	switch ac.Type {
	case "":
		return nil, nil
	case "webhook":
		cfg := webhook.Config{URL: ac.URL, Headers: ac.Headers, Timeout: ac.Timeout.Duration}
		if retries >= 0 {
			cfg.Retries = retries
		} else {
			cfg.Retries = webhook.DefaultRetries
		}
		return webhook.New(cfg)
	case "redis":
		cfg := redis.Config{URL: ac.URL, Channel: ac.Channel, Timeout: ac.Timeout.Duration}
		if retries >= 0 {
			cfg.Retries = retries
		} else {
			cfg.Retries = redis.DefaultRetries
		}
		return redis.New(cfg)
	default:
		return nil, fmt.Errorf("unknown adapter type: %q (must be webhook or redis)", ac.Type)
	}
}
