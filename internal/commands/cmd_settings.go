package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
)

type SettingsCmd struct {
	flags *Flags
	out   io.Writer
}

// NewSettingsCmd creates a new settings command
func NewSettingsCmd(flags *Flags) *SettingsCmd {
	return &SettingsCmd{flags: flags, out: os.Stdout}
}

// Register adds the settings command to the application
func (cmd *SettingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "settings",
		Usage:     "Print the effective settings as YAML",
		UsageText: "pomodoro settings",
		Action:    cmd.run,
		Commands: []*cli.Command{
			{
				Name:   "reset",
				Usage:  "Restore the default settings",
				Action: cmd.reset,
			},
		},
	})

	return app
}

func (cmd *SettingsCmd) run(ctx context.Context, c *cli.Command) error {
	store, err := cmd.flags.Store()
	if err != nil {
		return err
	}

	settings, err := storage.LoadSettings(store)
	if err != nil {
		log.Warn().Err(err).Msg("stored settings are unreadable, showing defaults")
	}

	data, err := storage.MarshalSettings(settings)
	if err != nil {
		return err
	}
	_, err = cmd.out.Write(data)
	return err
}

func (cmd *SettingsCmd) reset(ctx context.Context, c *cli.Command) error {
	store, err := cmd.flags.Store()
	if err != nil {
		return err
	}
	if err := storage.SaveSettings(store, model.DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.out, "Settings reset to defaults")
	return nil
}
