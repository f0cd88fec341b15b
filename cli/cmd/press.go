package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/cli/render"
	"github.com/simforge-io/indigo/hid"
)

// buttonNames maps CLI button names to their wire sources.
var buttonNames = map[string]hid.ButtonSource{
	"home":      hid.ButtonSourceHome,
	"lock":      hid.ButtonSourceLock,
	"apple-pay": hid.ButtonSourceApplePay,
	"side":      hid.ButtonSourceSide,
	"keyboard":  hid.ButtonSourceKeyboard,
	"siri":      hid.ButtonSourceSiri,
}

// parseButtonSource resolves a CLI button name.
func parseButtonSource(name string) (hid.ButtonSource, error) {
	src, ok := buttonNames[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(buttonNames))
		for n := range buttonNames {
			names = append(names, n)
		}
		sort.Strings(names)
		return 0, fmt.Errorf("unknown button %q (must be one of: %s)", name, strings.Join(names, ", "))
	}
	return src, nil
}

// PressResult is rendered after a press command.
type PressResult struct {
	SessionID string `json:"session_id"`
	Button    string `json:"button,omitempty"`
	KeyCode   uint32 `json:"key_code,omitempty"`
	Messages  int64  `json:"messages_sent"`
	Bytes     int64  `json:"bytes_sent"`
}

// PressCommand returns the press command.
func PressCommand() *cli.Command {
	flags := append(SessionFlags(),
		&cli.UintFlag{
			Name:  "key",
			Usage: "HID key code to press on the keyboard target",
		},
	)
	flags = append(flags, ReadOnlyFlags()...)

	return &cli.Command{
		Name:      "press",
		Usage:     "Press a hardware button or inject a key code",
		ArgsUsage: "[button]",
		Description: "Press a named hardware button (home, lock, side, " +
			"apple-pay, keyboard, siri) or, with --key, a raw key code.",
		Flags:  flags,
		Action: pressAction,
	}
}

func pressAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	name := c.Args().First()
	keyCode := uint32(c.Uint("key"))
	if name == "" && keyCode == 0 {
		return cli.Exit("press requires a button name or --key", 1)
	}
	if name != "" && keyCode != 0 {
		return cli.Exit("press takes a button name or --key, not both", 1)
	}

	var source hid.ButtonSource
	if name != "" {
		source, err = parseButtonSource(name)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	env, err := newSessionEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if name != "" {
		err = env.Session.PressButton(ctx, source)
	} else {
		err = env.Session.PressKey(ctx, keyCode)
	}
	if err != nil {
		_, _ = env.finish(ctx)
		return cli.Exit(fmt.Sprintf("press: %v", err), 1)
	}

	snap, err := env.finish(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return r.Render(PressResult{
		SessionID: snap.SessionID,
		Button:    strings.ToLower(name),
		KeyCode:   keyCode,
		Messages:  snap.MessagesSent,
		Bytes:     snap.BytesSent,
	})
}
