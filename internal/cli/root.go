// Package cli wires the cobra commands for the taskflow binary.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/app"
	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/services/tasks"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
	demo       bool
}

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - tasks, stats and a focus timer in your terminal",
		Long: `TaskFlow is a terminal task manager.

Add, edit, filter and sort tasks, watch your productivity on the dashboard
and analytics tabs, and run work/break focus sessions with the built-in timer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: .taskflow.json or .taskflow.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file path (overrides config)")
	rootCmd.Flags().BoolVar(&opts.demo, "demo", false, "Start with sample tasks")

	rootCmd.AddCommand(newTimerCmd(opts))
	rootCmd.AddCommand(newVersionCmd(version))

	rootCmd.Version = version
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runTUI(opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	store := tasks.NewStore(logger, tasks.WithSelection(cfg.Tasks.Selection()))
	if opts.demo {
		n := SeedDemo(store, time.Now())
		logger.Info("seeded demo tasks", "count", n)
	}

	configPath := opts.configPath
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		configPath = config.FilePath(cwd)
	}

	model := app.New(cfg,
		app.WithLogger(logger),
		app.WithStore(store),
		app.WithConfigPath(configPath),
	)
	program := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting tui", "tasks", store.Len())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// loadConfig reads the config and applies flag overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	return cfg, nil
}

// setupLogging builds the logger described by cfg and installs it as the
// slog default. The terminal belongs to the TUI, so logs only ever go to a
// file; an empty path discards them.
func setupLogging(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
