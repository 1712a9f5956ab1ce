package websession

import (
	"context"
	"errors"
	"time"
	"todoWeb/internal/models/session"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("веб-сессия не найдена")

// Session хранит только идентификатор аккаунта и то, что нужно для отображения.
// Сам аккаунт перечитывается из хранилища на каждом запросе.
type Session struct {
	ID              string                  `json:"id"`
	AccountID       int64                   `json:"account_id"`
	FirstName       string                  `json:"first_name"`
	LastName        string                  `json:"last_name"`
	PreviousSession *session.AccountSession `json:"previous_session,omitempty"`
	Flash           string                  `json:"flash,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	ExpiresAt       time.Time               `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

func NewID() string {
	return uuid.NewString()
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
