package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(dbPath string) (sessionout.SessionIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  seq INTEGER PRIMARY KEY,
  date TEXT NOT NULL,
  subject TEXT NOT NULL,
  topic TEXT NOT NULL,
  start_time TEXT,
  end_time TEXT,
  planned_end_time TEXT,
  hours REAL NOT NULL,
  productivity INTEGER NOT NULL,
  start_mood TEXT,
  end_mood TEXT,
  notes TEXT,
  timestamp TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_subject_date ON sessions(subject, date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Insert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (date, subject, topic, start_time, end_time, planned_end_time, hours, productivity, start_mood, end_mood, notes, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	row := encodeRow(session)
	_, err := s.db.ExecContext(ctx, stmt,
		row[0],
		session.Subject,
		session.Topic,
		nullable(row[3]),
		nullable(row[4]),
		nullable(row[5]),
		session.Hours,
		session.Productivity,
		session.StartMood,
		session.EndMood,
		session.Notes,
		nullable(row[11]),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Query(ctx context.Context, filter domain.Filter) ([]domain.Session, error) {
	var (
		where []string
		args  []any
	)
	if filter.Subject != "" {
		where = append(where, "subject = ? COLLATE NOCASE")
		args = append(args, filter.Subject)
	}
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From.Format(domain.DateLayout))
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To.Format(domain.DateLayout))
	}
	query := `SELECT date, subject, topic, start_time, end_time, planned_end_time, hours, productivity, start_mood, end_mood, notes, timestamp FROM sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, seq ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		var (
			date, subject, topic                  string
			startTime, endTime, plannedEnd, stamp sql.NullString
			startMood, endMood, notes             sql.NullString
			hours                                 float64
			productivity                          int
		)
		if err := rows.Scan(&date, &subject, &topic, &startTime, &endTime, &plannedEnd, &hours, &productivity, &startMood, &endMood, &notes, &stamp); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		parsedDate, err := parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("decode indexed session: %w", err)
		}
		session := domain.Session{
			Date:         parsedDate,
			Subject:      subject,
			Topic:        topic,
			Hours:        hours,
			Productivity: productivity,
			StartMood:    startMood.String,
			EndMood:      endMood.String,
			Notes:        notes.String,
		}
		session.StartTime, _ = parseOptionalTime(startTime.String)
		session.EndTime, _ = parseOptionalTime(endTime.String)
		session.PlannedEndTime, _ = parseOptionalTime(plannedEnd.String)
		if stamp.Valid {
			session.Timestamp, _ = parseTimestamp(stamp.String)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
