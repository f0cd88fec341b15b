package record

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/log"
)

// Player replays recorded wire messages. *session.Session satisfies it.
type Player interface {
	SendWire(ctx context.Context, kind hid.EventKind, timestamp uint64, wire []byte) error
}

// ReplayConfig configures a Replayer.
type ReplayConfig struct {
	// Speed scales inter-message delays. 1 replays at recorded pace,
	// 2 at double speed. Zero or negative means no delays at all.
	Speed float64

	// Logger is optional. If nil, no logging is emitted.
	Logger *log.Logger
}

// ReplayStats summarizes a finished replay.
type ReplayStats struct {
	Messages int
	Bytes    int64
	Duration time.Duration
}

// Replayer feeds a recording back through a player, reproducing the
// recorded inter-message timing. Recorded timestamps are nanoseconds
// from a monotonic clock, so deltas are meaningful but absolute values
// are not.
type Replayer struct {
	player Player
	cfg    ReplayConfig
}

// NewReplayer creates a replayer that sends through player.
func NewReplayer(player Player, cfg ReplayConfig) *Replayer {
	return &Replayer{player: player, cfg: cfg}
}

// Replay streams every envelope from r through the player in order.
// It stops at the first send failure or context cancellation; a damaged
// recording tail fails the replay after the intact prefix was sent.
func (rp *Replayer) Replay(ctx context.Context, r *Reader) (ReplayStats, error) {
	var stats ReplayStats
	start := time.Now()
	var prevTS uint64

	for {
		env, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("read envelope after %d messages: %w", stats.Messages, err)
		}

		if stats.Messages > 0 {
			if err := rp.pause(ctx, prevTS, env.Timestamp); err != nil {
				stats.Duration = time.Since(start)
				return stats, err
			}
		}
		prevTS = env.Timestamp

		if err := rp.player.SendWire(ctx, env.EventKind(), env.Timestamp, env.Wire); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("replay envelope %d: %w", env.Seq, err)
		}
		stats.Messages++
		stats.Bytes += int64(len(env.Wire))
	}

	stats.Duration = time.Since(start)
	if rp.cfg.Logger != nil {
		rp.cfg.Logger.Info("replay complete", map[string]any{
			"messages":    stats.Messages,
			"bytes":       stats.Bytes,
			"duration_ms": stats.Duration.Milliseconds(),
		})
	}
	return stats, nil
}

// pause sleeps for the scaled recorded delta, honoring ctx cancellation.
func (rp *Replayer) pause(ctx context.Context, prev, next uint64) error {
	if rp.cfg.Speed <= 0 || next <= prev {
		return nil
	}
	delay := time.Duration(float64(next-prev) / rp.cfg.Speed)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
