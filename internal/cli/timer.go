package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/riordanpawley/taskflow/internal/services/pomodoro"
	"github.com/spf13/cobra"
)

// TimerOptions configures a headless focus run
type TimerOptions struct {
	Work     time.Duration
	Break    time.Duration
	Cycles   int
	Interval time.Duration // tick period, one second when zero
}

func newTimerCmd(root *rootOptions) *cobra.Command {
	var opts TimerOptions

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run focus sessions without the TUI",
		Long: `Runs work/break cycles in the terminal. The last cycle ends after its
work phase. Durations default to the timer section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			logger, closeLog, err := setupLogging(cfg.Logging)
			if err != nil {
				return err
			}
			defer closeLog()

			if opts.Work == 0 {
				opts.Work = cfg.Timer.WorkDuration()
			}
			if opts.Break == 0 {
				opts.Break = cfg.Timer.BreakDuration()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return RunTimer(ctx, cmd.OutOrStdout(), opts, logger)
		},
	}

	cmd.Flags().DurationVar(&opts.Work, "work", 0, "Work phase length, e.g. 25m (default from config)")
	cmd.Flags().DurationVar(&opts.Break, "break", 0, "Break phase length, e.g. 5m (default from config)")
	cmd.Flags().IntVar(&opts.Cycles, "cycles", 4, "Number of work sessions to run")

	return cmd
}

// RunTimer runs opts.Cycles work phases with a break between each, drawing
// a one-line countdown to w. Interrupting ctx stops the run early without
// an error.
func RunTimer(ctx context.Context, w io.Writer, opts TimerOptions, logger *slog.Logger) error {
	if opts.Cycles < 1 {
		return fmt.Errorf("cycles must be at least 1, got %d", opts.Cycles)
	}
	if opts.Work < 0 || opts.Break < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if logger == nil {
		logger = slog.Default()
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())

	tk := pomodoro.NewTicker(pomodoro.NewTimer(opts.Work, opts.Break),
		pomodoro.WithInterval(opts.Interval),
		pomodoro.WithLogger(logger),
		pomodoro.WithOnTick(func(s pomodoro.State) {
			fmt.Fprintf(w, "\r%-5s %s %s", s.Mode.Label(), s.Clock(), bar.ViewAs(s.Progress))
		}),
		pomodoro.WithOnComplete(func(ev pomodoro.Event) {
			fmt.Fprintf(w, "\nFocus session %d complete.\n", ev.Sessions)
		}),
	)
	defer tk.Stop()

	for cycle := 1; cycle <= opts.Cycles; cycle++ {
		if err := runPhase(ctx, tk); err != nil {
			return finishTimer(w, tk, err)
		}
		if cycle == opts.Cycles {
			break
		}
		fmt.Fprintln(w, "Break time.")
		if err := runPhase(ctx, tk); err != nil {
			return finishTimer(w, tk, err)
		}
		fmt.Fprintln(w, "\nBreak over.")
	}
	return finishTimer(w, tk, nil)
}

// runPhase ticks until the current phase ends or ctx is done
func runPhase(ctx context.Context, tk *pomodoro.Ticker) error {
	tk.Start(ctx)
	tk.Wait()
	return ctx.Err()
}

func finishTimer(w io.Writer, tk *pomodoro.Ticker, err error) error {
	sessions := tk.State().Sessions
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(w, "\nStopped after %d focus session(s).\n", sessions)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Done: %d focus session(s).\n", sessions)
	return nil
}
