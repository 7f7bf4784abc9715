// Package main provides the entry point for the TaskFlow TUI application.
//
// TaskFlow is a terminal task manager with a dashboard, analytics and a
// work/break focus timer, built on Bubbletea.
//
// Usage:
//
//	taskflow [--config path] [--log-level level] [--log-file path] [--demo]
//	taskflow timer [--work 25m] [--break 5m] [--cycles 4]
//	taskflow version
package main

import (
	"os"

	"github.com/riordanpawley/taskflow/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
