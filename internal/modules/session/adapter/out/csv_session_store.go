package out

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/platform/dates"
)

const utf8BOM = "\ufeff"

// CSVSessionStore keeps the session log as a comma separated file with a
// header row. Rows are only ever appended; Clear truncates to the header.
type CSVSessionStore struct {
	path string
}

func NewCSVSessionStore(path string) sessionout.SessionStore {
	return &CSVSessionStore{path: path}
}

func (s *CSVSessionStore) Append(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	header, err := s.readHeader()
	if err != nil {
		return err
	}
	if header != nil && !hasPrefix(header, domain.Header) {
		if header, err = s.migrate(); err != nil {
			return err
		}
	}

	terminated, err := s.endsWithNewline()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	if !terminated {
		if _, err := f.WriteString("\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("terminate last session row: %w", err)
		}
	}
	w := csv.NewWriter(f)
	if header == nil {
		header = domain.Header
		if err := w.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("write session log header: %w", err)
		}
	}
	row := encodeRow(session)
	for len(row) < len(header) {
		row = append(row, "")
	}
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return fmt.Errorf("write session row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush session log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close session log: %w", err)
	}
	return nil
}

func (s *CSVSessionStore) LoadAll(_ context.Context) (domain.Log, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Log{}, nil
		}
		return domain.Log{}, fmt.Errorf("open session log: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := newReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Log{}, nil
		}
		return domain.Log{}, fmt.Errorf("read session log header: %w", err)
	}
	columns := indexColumns(header)

	log := domain.Log{Sessions: []domain.Session{}}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Skipped++
			continue
		}
		if err != nil {
			return domain.Log{}, fmt.Errorf("read session log: %w", err)
		}
		if isBlank(record) {
			continue
		}
		session, defaulted, ok := decodeRow(columns, record)
		if !ok || session.Hours < 0 {
			log.Skipped++
			continue
		}
		if defaulted {
			log.Defaulted++
		}
		log.Sessions = append(log.Sessions, session)
	}
	return log, nil
}

func (s *CSVSessionStore) Clear(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	payload, err := encodeRecords(domain.Header, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("clear session log: %w", err)
	}
	return nil
}

// endsWithNewline reports whether appended bytes start on a fresh line.
// A missing or empty file counts as terminated.
func (s *CSVSessionStore) endsWithNewline() (bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("open session log: %w", err)
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat session log: %w", err)
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("read session log tail: %w", err)
	}
	return last[0] == '\n', nil
}

func (s *CSVSessionStore) readHeader() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer func() { _ = f.Close() }()
	header, err := newReader(f).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session log header: %w", err)
	}
	return cleanHeader(header), nil
}

// migrate rewrites a log written with an older column layout into the
// current one. Unknown columns are kept after the known ones.
func (s *CSVSessionStore) migrate() ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}
	r := newReader(bytes.NewReader(raw))
	old, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read session log header: %w", err)
	}
	old = cleanHeader(old)
	columns := indexColumns(old)

	header := append([]string(nil), domain.Header...)
	known := map[string]bool{domain.ColLegacyMood: true}
	for _, col := range domain.Header {
		known[col] = true
	}
	for _, col := range old {
		if !known[col] {
			header = append(header, col)
		}
	}

	startMoodIdx := indexColumns(header)[domain.ColStartMood]
	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read session log: %w", err)
		}
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = lookup(columns, record, col)
		}
		if row[startMoodIdx] == "" {
			row[startMoodIdx] = lookup(columns, record, domain.ColLegacyMood)
		}
		rows = append(rows, row)
	}

	payload, err := encodeRecords(header, rows)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(s.path, payload); err != nil {
		return nil, err
	}
	return header, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func encodeRecords(header []string, rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sessions-*.csv")
	if err != nil {
		return fmt.Errorf("create temp session log: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp session log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp session log: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace session log: %w", err)
	}
	return nil
}

func encodeRow(s domain.Session) []string {
	timestamp := ""
	if !s.Timestamp.IsZero() {
		// The column has no zone; it holds local wall clock time.
		timestamp = s.Timestamp.In(time.Local).Format(domain.TimestampLayout)
	}
	return []string{
		s.Date.Format(domain.DateLayout),
		normalizeNewlines(s.Subject),
		normalizeNewlines(s.Topic),
		formatTime(s.StartTime),
		formatTime(s.EndTime),
		formatTime(s.PlannedEndTime),
		domain.FormatHours(s.Hours),
		strconv.Itoa(s.Productivity),
		normalizeNewlines(s.StartMood),
		normalizeNewlines(s.EndMood),
		normalizeNewlines(s.Notes),
		timestamp,
	}
}

// decodeRow parses one record. ok is false when the row has no usable date.
// defaulted reports that some present but malformed field was replaced by
// its absent or zero value.
func decodeRow(columns map[string]int, record []string) (domain.Session, bool, bool) {
	get := func(col string) string { return lookup(columns, record, col) }
	defaulted := false

	date, err := parseDate(strings.TrimSpace(get(domain.ColDate)))
	if err != nil {
		return domain.Session{}, false, false
	}
	session := domain.Session{
		Date:      date,
		Subject:   get(domain.ColSubject),
		Topic:     get(domain.ColTopic),
		StartMood: get(domain.ColStartMood),
		EndMood:   get(domain.ColEndMood),
		Notes:     get(domain.ColNotes),
	}
	if _, ok := columns[domain.ColStartMood]; !ok {
		session.StartMood = get(domain.ColLegacyMood)
	}

	var bad bool
	session.StartTime, bad = parseOptionalTime(get(domain.ColStartTime))
	defaulted = defaulted || bad
	session.EndTime, bad = parseOptionalTime(get(domain.ColEndTime))
	defaulted = defaulted || bad
	session.PlannedEndTime, bad = parseOptionalTime(get(domain.ColPlannedEndTime))
	defaulted = defaulted || bad

	if raw := strings.TrimSpace(get(domain.ColHours)); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
			defaulted = true
			hours = 0
		}
		session.Hours = hours
	}
	if raw := strings.TrimSpace(get(domain.ColProductivity)); raw != "" {
		productivity, err := strconv.Atoi(raw)
		if err != nil {
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				defaulted = true
			} else {
				productivity = int(math.Round(f))
			}
		}
		session.Productivity = productivity
	}
	if raw := strings.TrimSpace(get(domain.ColTimestamp)); raw != "" {
		ts, err := parseTimestamp(raw)
		if err != nil {
			defaulted = true
		}
		session.Timestamp = ts
	}
	return session, defaulted, true
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{domain.DateLayout, domain.TimestampLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return dates.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{domain.TimestampLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func parseOptionalTime(raw string) (*domain.TimeOfDay, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	t, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return nil, true
	}
	return &t, false
}

// normalizeNewlines stores line breaks as \n. The CSV reader folds \r\n
// inside quoted fields, so anything else would not read back unchanged.
func normalizeNewlines(v string) string {
	if !strings.Contains(v, "\r") {
		return v
	}
	v = strings.ReplaceAll(v, "\r\n", "\n")
	return strings.ReplaceAll(v, "\r", "\n")
}

func formatTime(t *domain.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		out[i] = strings.TrimSpace(col)
	}
	return out
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, col := range cleanHeader(header) {
		if _, seen := columns[col]; !seen {
			columns[col] = i
		}
	}
	return columns
}

func lookup(columns map[string]int, record []string, col string) string {
	i, ok := columns[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func hasPrefix(header, prefix []string) bool {
	if len(header) < len(prefix) {
		return false
	}
	for i := range prefix {
		if header[i] != prefix[i] {
			return false
		}
	}
	return true
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
