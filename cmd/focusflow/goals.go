package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	goaldto "focusflow/internal/modules/goal/dto"
)

func newGoalsCmd(dataPath *string) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Weekly goal targets and progress"}

	goals.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show goal targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.Show(context.Background())
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var subject string
	var target float64
	set := &cobra.Command{
		Use:   "set --subject <s> --target <hours>",
		Short: "Add or update a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(subject) == "" {
				return fmt.Errorf("--subject is required")
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.Set(context.Background(), subject, target)
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), out)
			return nil
		},
	}
	set.Flags().StringVar(&subject, "subject", "", "subject")
	set.Flags().Float64Var(&target, "target", 0, "target hours")

	var removeSubject string
	remove := &cobra.Command{
		Use:   "remove --subject <s>",
		Short: "Remove a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(removeSubject) == "" {
				return fmt.Errorf("--subject is required")
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.Remove(context.Background(), removeSubject)
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), out)
			return nil
		},
	}
	remove.Flags().StringVar(&removeSubject, "subject", "", "subject")

	goals.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.Reset(context.Background())
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var date, window string
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Compare logged hours with goal targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := parseDay("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			rows, err := app.GoalCLI.Progress(context.Background(), today, window)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
				return nil
			}
			for _, p := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %6sh / %-6sh %5.1f%%\n",
					p.Subject, humanize.FtoaWithDigits(p.Actual, 2),
					humanize.FtoaWithDigits(p.Target, 2), p.Percent)
			}
			return nil
		},
	}
	progress.Flags().StringVar(&date, "date", "today", "reference date")
	progress.Flags().StringVar(&window, "window", "all", "all|week")

	goals.AddCommand(set, remove, progress)
	return goals
}

func printGoals(w io.Writer, goals []goaldto.Goal) {
	if len(goals) == 0 {
		_, _ = fmt.Fprintln(w, "no goals")
		return
	}
	for _, g := range goals {
		_, _ = fmt.Fprintf(w, "%s\t%sh\n", g.Subject, humanize.FtoaWithDigits(g.TargetHours, 2))
	}
}
