package websession

import (
	"context"
	"errors"
	"net/http"
	"time"
	"todoWeb/internal/config"
	"todoWeb/internal/logger"

	"go.uber.org/zap"
)

// Manager связывает cookie браузера с записью в Store.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "TODOSESSIONID"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		store:      store,
		cookieName: name,
		ttl:        ttl,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Load возвращает ErrNotFound, если cookie нет или сессия истекла.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(r.Context(), cookie.Value)
}

// Start сохраняет новую сессию и выставляет cookie. Старая сессия запроса, если была, удаляется.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, s *Session) error {
	if old, err := m.Load(r); err == nil && old.ID != s.ID {
		_ = m.store.Delete(r.Context(), old.ID)
	}

	if s.ID == "" {
		s.ID = NewID()
	}
	now := m.now()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	if err := m.store.Save(r.Context(), s); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Save продлевает срок жизни сессии.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	s.ExpiresAt = m.now().Add(m.ttl)
	return m.store.Save(ctx, s)
}

func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, s *Session) {
	if s != nil {
		if err := m.store.Delete(r.Context(), s.ID); err != nil {
			logger.Error("WebSession: Ошибка удаления сессии", err, zap.String("session_id", s.ID))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetFlash запоминает сообщение до следующего показа.
func (m *Manager) SetFlash(ctx context.Context, s *Session, message string) {
	if s == nil {
		return
	}
	s.Flash = message
	if err := m.Save(ctx, s); err != nil {
		logger.Error("WebSession: Ошибка сохранения сообщения", err)
	}
}

func (m *Manager) PopFlash(ctx context.Context, s *Session) string {
	if s == nil || s.Flash == "" {
		return ""
	}
	message := s.Flash
	s.Flash = ""
	if err := m.Save(ctx, s); err != nil {
		logger.Error("WebSession: Ошибка сохранения сессии", err)
	}
	return message
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
