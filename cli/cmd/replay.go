package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/cli/render"
	"github.com/simforge-io/indigo/record"
)

// ReplayResult is rendered after a replay command.
type ReplayResult struct {
	SessionID  string  `json:"session_id"`
	Recording  string  `json:"recording"`
	Messages   int     `json:"messages"`
	Bytes      int64   `json:"bytes"`
	DurationMs int64   `json:"duration_ms"`
	Speed      float64 `json:"speed"`
}

// ReplayCommand returns the replay command.
func ReplayCommand() *cli.Command {
	flags := append(SessionFlags(),
		&cli.Float64Flag{
			Name:  "speed",
			Usage: "Timing scale: 1 recorded pace, 2 double speed, 0 no delays",
			Value: 1,
		},
	)
	flags = append(flags, ReadOnlyFlags()...)

	return &cli.Command{
		Name:      "replay",
		Usage:     "Re-send a recorded session",
		ArgsUsage: "<recording>",
		Flags:     flags,
		Action:    replayAction,
	}
}

func replayAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		return cli.Exit("replay requires a recording file", 1)
	}

	speed := c.Float64("speed")
	if cfg, err := loadConfig(c); err == nil && !c.IsSet("speed") && cfg.Replay.Speed > 0 {
		speed = cfg.Replay.Speed
	}

	reader, err := record.OpenFile(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = reader.Close() }()

	env, err := newSessionEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	replayer := record.NewReplayer(env.Session, record.ReplayConfig{
		Speed:  speed,
		Logger: env.Logger,
	})
	stats, replayErr := replayer.Replay(ctx, reader)

	snap, err := env.finish(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if replayErr != nil {
		return cli.Exit(fmt.Sprintf("replay stopped after %d messages: %v", stats.Messages, replayErr), 1)
	}

	return r.Render(ReplayResult{
		SessionID:  snap.SessionID,
		Recording:  path,
		Messages:   stats.Messages,
		Bytes:      stats.Bytes,
		DurationMs: stats.Duration.Milliseconds(),
		Speed:      speed,
	})
}
