package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/format"
)

type HistoryCmd struct {
	flags *Flags
	out   io.Writer

	// flags
	stopwatch bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags, out: os.Stdout}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	stopwatchFlag := func() cli.Flag {
		return &cli.BoolFlag{
			Name:        "stopwatch",
			Usage:       "use the stopwatch history instead of the countdown history",
			Destination: &cmd.stopwatch,
		}
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "Print recorded session times",
		UsageText: "pomodoro history [--stopwatch]",
		Description: `Prints the stored history, newest first.

Countdown entries are the remaining time when the timer was stopped.
Stopwatch entries are the elapsed time when the stopwatch was stopped.`,
		Flags:  []cli.Flag{stopwatchFlag()},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Clear the stored history",
				Flags:  []cli.Flag{stopwatchFlag()},
				Action: cmd.clear,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) key() string {
	if cmd.stopwatch {
		return storage.KeyStopwatchHistory
	}
	return storage.KeyHistory
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	store, err := cmd.flags.Store()
	if err != nil {
		return err
	}

	fallback := storage.DefaultHistory()
	if cmd.stopwatch {
		fallback = []int{}
	}
	values, err := storage.LoadHistoryOr(store, cmd.key(), fallback)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(values) == 0 {
		fmt.Fprintln(cmd.out, "No history recorded")
		return nil
	}
	for i, value := range values {
		fmt.Fprintf(cmd.out, "%d. %s\n", i+1, format.HistoryEntry(value))
	}
	return nil
}

func (cmd *HistoryCmd) clear(ctx context.Context, c *cli.Command) error {
	store, err := cmd.flags.Store()
	if err != nil {
		return err
	}

	values := storage.DefaultHistory()
	if cmd.stopwatch {
		values = []int{}
	}
	if err := storage.SaveHistory(store, cmd.key(), values); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Fprintln(cmd.out, "History cleared")
	return nil
}
