package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/views/timer"
)

func newLogCmd(dataPath *string) *cobra.Command {
	var (
		subject, topic, date           string
		startTime, endTime, plannedEnd string
		startMood, endMood, notes      string
		hours                          float64
		productivity                   int
	)
	cmd := &cobra.Command{
		Use:   "log --subject <s> --topic <t> --hours <h>",
		Short: "Record a finished study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" {
				return fmt.Errorf("--subject and --topic are required")
			}
			day, err := parseDay("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Log(context.Background(), sessiondto.LogInput{
				Date:           day,
				Subject:        subject,
				Topic:          topic,
				StartTime:      startTime,
				EndTime:        endTime,
				PlannedEndTime: plannedEnd,
				Hours:          hours,
				Productivity:   productivity,
				StartMood:      startMood,
				EndMood:        endMood,
				Notes:          notes,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s / %s %sh on %s\n", out.Subject, out.Topic, humanize.FtoaWithDigits(out.Hours, 2), out.Date.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject")
	cmd.Flags().StringVar(&topic, "topic", "", "topic")
	cmd.Flags().Float64Var(&hours, "hours", 0, "hours studied")
	cmd.Flags().IntVar(&productivity, "productivity", 5, "self-rated productivity 1..10")
	cmd.Flags().StringVar(&date, "date", "today", "session date (2024-01-03, yesterday, last friday)")
	cmd.Flags().StringVar(&startTime, "start", "", "start time HH:MM[:SS]")
	cmd.Flags().StringVar(&endTime, "end", "", "end time HH:MM[:SS]")
	cmd.Flags().StringVar(&plannedEnd, "planned-end", "", "planned end time HH:MM[:SS]")
	cmd.Flags().StringVar(&startMood, "start-mood", "", "mood before the session")
	cmd.Flags().StringVar(&endMood, "end-mood", "", "mood after the session")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	return cmd
}

func newSessionCmd(dataPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session lifecycle and history"}

	var subject, topic, plannedEnd, startMood string
	start := &cobra.Command{
		Use:   "start --subject <s> --topic <t>",
		Short: "Track a live session; press enter to stop it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" {
				return fmt.Errorf("--subject and --topic are required")
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			active, err := app.SessionCLI.Start(ctx, subject, topic, plannedEnd, startMood)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "session started: %s / %s at %s\n", active.Subject, active.Topic, active.StartedAt.Format("15:04:05"))
			_, _ = fmt.Fprintln(out, "press enter to stop, ctrl+c to discard")

			in := newPrompter(cmd.InOrStdin(), out)
			if _, err := in.line(ctx, ""); err != nil {
				if errors.Is(err, context.Canceled) {
					_, _ = fmt.Fprintf(out, "\nsession discarded (started %s)\n", humanize.Time(active.StartedAt))
					return nil
				}
				return err
			}
			productivity, err := in.productivity(ctx)
			if err != nil {
				return err
			}
			endMood, err := in.optional(ctx, "end mood (optional): ")
			if err != nil {
				return err
			}
			notes, err := in.optional(ctx, "notes (optional): ")
			if err != nil {
				return err
			}

			saved, err := app.SessionCLI.Stop(context.Background(), active, endMood, productivity, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "session saved: %s / %s %sh productivity=%d\n", saved.Subject, saved.Topic, humanize.FtoaWithDigits(saved.Hours, 2), saved.Productivity)
			return nil
		},
	}
	start.Flags().StringVar(&subject, "subject", "", "subject")
	start.Flags().StringVar(&topic, "topic", "", "topic")
	start.Flags().StringVar(&plannedEnd, "planned-end", "", "planned end time HH:MM[:SS]")
	start.Flags().StringVar(&startMood, "mood", "", "mood at start")

	var listSubject, from, to string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromDay, err := parseOptionalDay("from", from)
			if err != nil {
				return err
			}
			toDay, err := parseOptionalDay("to", to)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.List(context.Background(), sessiondto.ListInput{
				Subject: listSubject,
				From:    fromDay,
				To:      toDay,
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s-%s\t%sh\tp=%d\t%s\n",
					s.Date.Format("2006-01-02"), s.Subject, s.Topic,
					formatTimeOfDay(s.StartTime), formatTimeOfDay(s.EndTime),
					humanize.FtoaWithDigits(s.Hours, 2), s.Productivity, s.StartMood)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listSubject, "subject", "", "only this subject")
	list.Flags().StringVar(&from, "from", "", "first date (inclusive)")
	list.Flags().StringVar(&to, "to", "", "last date (inclusive)")
	list.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear --yes",
		Short: "Delete every logged session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("--yes is required to clear the session log")
			}
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session log cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm")

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from the CSV log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, os.Stderr)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %s sessions\n", humanize.Comma(int64(out.Indexed)))
			return nil
		},
	}

	session.AddCommand(start, list, clearCmd, reindex)
	return session
}

func formatTimeOfDay(t *sessiondto.TimeOfDay) string {
	if t == nil {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// prompter reads answers line by line and gives up when ctx is cancelled.
type prompter struct {
	lines <-chan string
	err   *error
	out   io.Writer
}

func newPrompter(r io.Reader, out io.Writer) prompter {
	lines := make(chan string)
	readErr := new(error)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		*readErr = scanner.Err()
		if *readErr == nil {
			*readErr = io.EOF
		}
	}()
	return prompter{lines: lines, err: readErr, out: out}
}

func (p prompter) line(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(p.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", fmt.Errorf("read input: %w", *p.err)
		}
		return strings.TrimSpace(line), nil
	}
}

// optional is line for answers that may be skipped; closed input reads as
// an empty answer.
func (p prompter) optional(ctx context.Context, prompt string) (string, error) {
	answer, err := p.line(ctx, prompt)
	if errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(p.out)
		return "", nil
	}
	return answer, err
}

func (p prompter) productivity(ctx context.Context) (int, error) {
	for {
		raw, err := p.line(ctx, "productivity 1-10: ")
		if err != nil {
			return 0, err
		}
		value, err := timer.ParseProductivity(raw)
		if err == nil {
			return value, nil
		}
		_, _ = fmt.Fprintln(p.out, err)
	}
}
