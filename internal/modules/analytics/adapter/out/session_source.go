package out

import (
	"context"
	"time"

	"focusflow/internal/modules/analytics/domain"
	analyticsout "focusflow/internal/modules/analytics/port/out"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
)

// SessionLogSource reads the history through the session module.
type SessionLogSource struct {
	sessions sessionin.Usecase
}

func NewSessionLogSource(sessions sessionin.Usecase) analyticsout.SessionSource {
	return &SessionLogSource{sessions: sessions}
}

func (s *SessionLogSource) Load(ctx context.Context) (analyticsout.History, error) {
	loaded, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return analyticsout.History{}, err
	}
	history := analyticsout.History{
		Sessions: make([]domain.Session, 0, len(loaded.Sessions)),
		Warnings: loaded.Defaulted + loaded.Skipped,
	}
	for _, row := range loaded.Sessions {
		if row.Hours < 0 {
			continue
		}
		history.Sessions = append(history.Sessions, domain.Session{
			Date:         row.Date,
			Subject:      row.Subject,
			Hours:        row.Hours,
			Productivity: row.Productivity,
			StartMood:    row.StartMood,
			Start:        offset(row.StartTime),
			End:          offset(row.EndTime),
		})
	}
	return history, nil
}

func offset(t *sessiondto.TimeOfDay) *time.Duration {
	if t == nil {
		return nil
	}
	d := time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
	return &d
}
