package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/cli/render"
)

// TapResult is rendered after a tap command.
type TapResult struct {
	SessionID string  `json:"session_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Taps      int     `json:"taps"`
	Messages  int64   `json:"messages_sent"`
	Bytes     int64   `json:"bytes_sent"`
}

// TapCommand returns the tap command.
func TapCommand() *cli.Command {
	flags := append(SessionFlags(),
		&cli.Float64Flag{
			Name:     "x",
			Usage:    "Horizontal position, 0.0 (left) to 1.0 (right)",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     "y",
			Usage:    "Vertical position, 0.0 (top) to 1.0 (bottom)",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "Number of taps",
			Value: 1,
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "Delay between taps",
			Value: 100 * time.Millisecond,
		},
		&cli.DurationFlag{
			Name:  "hold",
			Usage: "Hold duration (long press) instead of an immediate tap",
		},
	)
	flags = append(flags, ReadOnlyFlags()...)

	return &cli.Command{
		Name:   "tap",
		Usage:  "Inject tap gestures at a normalized position",
		Flags:  flags,
		Action: tapAction,
	}
}

func tapAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	env, err := newSessionEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	x, y := c.Float64("x"), c.Float64("y")
	count := c.Int("count")
	hold := c.Duration("hold")

	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				count = i
			case <-time.After(c.Duration("interval")):
			}
			if ctx.Err() != nil {
				break
			}
		}

		if hold > 0 {
			err = longPress(ctx, env, x, y, hold)
		} else {
			err = env.Session.Tap(ctx, x, y)
		}
		if err != nil {
			_, _ = env.finish(ctx)
			return cli.Exit(fmt.Sprintf("tap %d/%d: %v", i+1, count, err), 1)
		}
	}

	snap, err := env.finish(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return r.Render(TapResult{
		SessionID: snap.SessionID,
		X:         x,
		Y:         y,
		Taps:      count,
		Messages:  snap.MessagesSent,
		Bytes:     snap.BytesSent,
	})
}

// longPress holds a touch down for the given duration before release.
func longPress(ctx context.Context, env *sessionEnv, x, y float64, hold time.Duration) error {
	if err := env.Session.TouchDown(ctx, x, y); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-time.After(hold):
	}
	return env.Session.TouchUp(ctx, x, y)
}
