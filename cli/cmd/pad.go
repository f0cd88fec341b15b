package cmd

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/cli/tui"
)

// PadCommand returns the pad command, an interactive touchpad TUI.
func PadCommand() *cli.Command {
	return &cli.Command{
		Name:   "pad",
		Usage:  "Drive a session interactively from a terminal touchpad",
		Flags:  SessionFlags(),
		Action: padAction,
	}
}

func padAction(c *cli.Context) error {
	env, err := newSessionEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	padErr := tui.RunPad(env.Session)

	if _, err := env.finish(context.Background()); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if padErr != nil {
		return cli.Exit(padErr.Error(), 1)
	}
	return nil
}
