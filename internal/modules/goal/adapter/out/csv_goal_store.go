package out

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"focusflow/internal/modules/goal/domain"
	goalout "focusflow/internal/modules/goal/port/out"
)

// CSVGoalStore keeps one Subject,TargetHours row per goal. Save always
// rewrites the whole file.
type CSVGoalStore struct {
	path string
}

func NewCSVGoalStore(path string) goalout.GoalStore {
	return &CSVGoalStore{path: path}
}

func (s *CSVGoalStore) Load(_ context.Context) ([]domain.Goal, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open goals: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read goals header: %w", err)
	}
	subjectIdx, targetIdx := 0, 1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case domain.ColSubject:
			subjectIdx = i
		case domain.ColTargetHours:
			targetIdx = i
		}
	}

	var goals []domain.Goal
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read goals: %w", err)
		}
		if subjectIdx >= len(record) || strings.TrimSpace(record[subjectIdx]) == "" {
			continue
		}
		target := 0.0
		if targetIdx < len(record) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[targetIdx]), 64); err == nil && v >= 0 {
				target = v
			}
		}
		// A repeated subject keeps its first position and its last target.
		goals = domain.Upsert(goals, domain.Goal{Subject: strings.TrimSpace(record[subjectIdx]), TargetHours: target})
	}
	return goals, nil
}

func (s *CSVGoalStore) Save(_ context.Context, goals []domain.Goal) error {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(domain.Header); err != nil {
		return fmt.Errorf("encode goals header: %w", err)
	}
	for _, g := range goals {
		if err := w.Write([]string{g.Subject, strconv.FormatFloat(g.TargetHours, 'f', -1, 64)}); err != nil {
			return fmt.Errorf("encode goal: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create goals dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".goals-*.csv")
	if err != nil {
		return fmt.Errorf("create temp goals: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp goals: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp goals: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace goals: %w", err)
	}
	return nil
}
