package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	analyticsdto "focusflow/internal/modules/analytics/dto"
)

func newStatsCmd(dataPath *string) *cobra.Command {
	var date, window string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Hours per subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := parseDay("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			totals, err := app.AnalyticsCLI.SubjectTotals(context.Background(), today, window)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			printSubjects(cmd.OutOrStdout(), totals)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "today", "reference date")
	cmd.Flags().StringVar(&window, "window", "all", "all|week")
	return cmd
}

func newDashboardCmd(dataPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the study dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := parseDay("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			d, err := app.AnalyticsCLI.Dashboard(context.Background(), today)
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "today", "reference date")
	return cmd
}

func newReportCmd(dataPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the weekly markdown report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := parseDay("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.AnalyticsCLI.ExportReport(context.Background(), today)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report %s..%s (%sh) written to %s\n",
				out.From.Format("2006-01-02"), out.To.Format("2006-01-02"),
				humanize.FtoaWithDigits(out.WeekHours, 2), out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "today", "last day of the reported week")
	return cmd
}

func printDashboard(w io.Writer, d analyticsdto.DashboardOutput) {
	peak := "N/A"
	if d.PeakHour != nil {
		peak = fmt.Sprintf("%02d:00", *d.PeakHour)
	}
	_, _ = fmt.Fprintf(w, "as of %s\n", d.Today.Format("Mon 2006-01-02"))
	_, _ = fmt.Fprintf(w, "sessions:      %s\n", humanize.Comma(int64(d.Sessions)))
	_, _ = fmt.Fprintf(w, "total hours:   %s\n", humanize.FtoaWithDigits(d.TotalHours, 2))
	_, _ = fmt.Fprintf(w, "last 7 days:   %s\n", humanize.FtoaWithDigits(d.WeekHours, 2))
	_, _ = fmt.Fprintf(w, "streak:        %d days\n", d.Streak)
	_, _ = fmt.Fprintf(w, "best subject:  %s\n", d.BestSubject)
	_, _ = fmt.Fprintf(w, "peak hour:     %s\n", peak)
	if d.BestMood != "" {
		_, _ = fmt.Fprintf(w, "best mood:     %s\nworst mood:    %s\n", d.BestMood, d.WorstMood)
	}
	if len(d.Subjects) > 0 {
		_, _ = fmt.Fprintln(w, "\nsubjects")
		printSubjects(w, d.Subjects)
	}
	if len(d.ByMood) > 0 {
		_, _ = fmt.Fprintln(w, "\nproductivity by mood")
		for _, m := range d.ByMood {
			_, _ = fmt.Fprintf(w, "  %-16s %4.1f  (%d)\n", m.Mood, m.Mean, m.Sessions)
		}
	}
	if d.Warnings > 0 {
		_, _ = fmt.Fprintf(w, "\n%d log rows were defaulted or skipped\n", d.Warnings)
	}
}

func printSubjects(w io.Writer, totals []analyticsdto.SubjectTotal) {
	width := 0
	for _, t := range totals {
		width = max(width, len(t.Subject))
	}
	for _, t := range totals {
		_, _ = fmt.Fprintf(w, "  %s%s  %6sh  %5.1f%%\n",
			t.Subject, strings.Repeat(" ", width-len(t.Subject)),
			humanize.FtoaWithDigits(t.Hours, 2), t.Share*100)
	}
}
