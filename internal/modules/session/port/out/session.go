package out

import (
	"context"

	"focusflow/internal/modules/session/domain"
)

// SessionStore is the append-only session log.
type SessionStore interface {
	Append(ctx context.Context, session domain.Session) error
	LoadAll(ctx context.Context) (domain.Log, error)
	Clear(ctx context.Context) error
}

// SessionIndexProjector mirrors the log into a queryable index.
type SessionIndexProjector interface {
	Reset(ctx context.Context) error
	Insert(ctx context.Context, session domain.Session) error
	Query(ctx context.Context, filter domain.Filter) ([]domain.Session, error)
}
