package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"pomodoro/internal/commands"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/shell"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logCloser func()
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:    "pomodoro",
		Usage:   "Pomodoro timer and stopwatch",
		Version: version,
		Description: `Runs the Pomodoro desktop widget when started without a command.

Settings and history live in the data directory and are shared by the widget
and the history and settings commands.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("POMODORO_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stdout)",
				Sources:     cli.EnvVars("POMODORO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("POMODORO_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "store",
				Usage:       "storage backend (file, badger)",
				Sources:     cli.EnvVars("POMODORO_STORE"),
				Value:       commands.StoreFile,
				Destination: &flags.StoreKind,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := flags.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
				return err
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'pomodoro --help' for usage", c.Args().First())
			}
			return runWidget(ctx, flags)
		},
	}

	app = commands.NewHistoryCmd(flags).Register(app)
	app = commands.NewSettingsCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}
	os.Exit(exitCode)
}

func runWidget(ctx context.Context, flags *commands.Flags) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.Info().Msg("already running, bringing the existing window forward")
		return platform.SignalRunningInstance(appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := flags.Store()
	if err != nil {
		return err
	}

	return shell.Run(ctx, shell.Options{
		AppID:   appID,
		AppName: appName,
		Store:   store,
		Guard:   guard,
	})
}
