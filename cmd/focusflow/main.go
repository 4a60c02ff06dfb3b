package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"focusflow/internal/bootstrap"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/dates"
	"focusflow/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Study session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "directory holding study_logs.csv and goals.csv")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newLogCmd(&dataPath))
	root.AddCommand(newSessionCmd(&dataPath))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newDashboardCmd(&dataPath))
	root.AddCommand(newGoalsCmd(&dataPath))
	root.AddCommand(newReportCmd(&dataPath))
	return root
}

func loadApp(dataPath string, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(logOut, cfg.LogLevel, cfg.LogFormat))
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusflow terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			// stderr belongs to the alternate screen while the UI runs.
			logPath := filepath.Join(*dataPath, ".focusflow", "focusflow.log")
			if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
				return fmt.Errorf("create log dir: %w", err)
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			app, err := loadApp(*dataPath, logFile)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func parseDay(flag, raw string) (time.Time, error) {
	day, err := dates.Parse(raw, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return day, nil
}

func parseOptionalDay(flag, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDay(flag, raw)
}
