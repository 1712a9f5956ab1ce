package middleware

import (
	"context"
	"net/http"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

const accountKey contextKey = "account"

type AccountLoader interface {
	GetAccount(ctx context.Context, id int64) (*account.Account, error)
}

type SessionToucher interface {
	TouchSession(ctx context.Context, sessionID string) error
}

type Auth struct {
	sessions *websession.Manager
	accounts AccountLoader
	audit    SessionToucher
}

func NewAuth(sessions *websession.Manager, accounts AccountLoader, audit SessionToucher) *Auth {
	return &Auth{
		sessions: sessions,
		accounts: accounts,
		audit:    audit,
	}
}

// Authenticate кладёт в контекст веб-сессию и свежую копию аккаунта.
// Сессия отключённого или удалённого аккаунта уничтожается, запрос идёт дальше анонимно;
// при сбое хранилища отдаётся техническая ошибка, сессия остаётся.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := a.sessions.Load(r)
		if err != nil {
			if !websession.IsNotFound(err) {
				logger.Error("Middleware: Ошибка чтения веб-сессии", err,
					zap.String("request_id", GetRequestID(r.Context())))
				renderView(w, r, http.StatusInternalServerError, viewError, service.TechnicalErrorMessage)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		acc, err := a.accounts.GetAccount(r.Context(), ws.AccountID)
		if err != nil && !service.IsCode(err, service.CodeNotFound) {
			// хранилище недоступно: сессию не трогаем, пользователь повторит запрос
			logger.Error("Middleware: Не удалось загрузить аккаунт сессии", err,
				zap.Int64("account_id", ws.AccountID),
				zap.String("request_id", GetRequestID(r.Context())))
			renderView(w, r, http.StatusInternalServerError, viewError, service.TechnicalErrorMessage)
			return
		}
		if err != nil || acc.Disabled() {
			logger.Warn("Middleware: Сессия закрыта принудительно",
				zap.Int64("account_id", ws.AccountID),
				zap.String("request_id", GetRequestID(r.Context())))
			a.sessions.Destroy(w, r, ws)
			next.ServeHTTP(w, r)
			return
		}

		if a.audit != nil {
			if err := a.audit.TouchSession(r.Context(), ws.ID); err != nil && !service.IsCode(err, service.CodeNotFound) {
				logger.Error("Middleware: Не удалось обновить last_accessed", err, zap.String("session_id", ws.ID))
			}
		}
		if err := a.sessions.Save(r.Context(), ws); err != nil {
			logger.Error("Middleware: Не удалось продлить веб-сессию", err)
		}

		ctx := websession.WithSession(r.Context(), ws)
		ctx = WithAccount(ctx, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAccount(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := GetAccount(r.Context())
		if !service.IsAdmin(acc) {
			if acc != nil {
				logger.Warn("Middleware: Доступ к админке без прав",
					zap.Int64("account_id", acc.ID),
					zap.String("path", r.URL.Path))
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithAccount(ctx context.Context, acc *account.Account) context.Context {
	return context.WithValue(ctx, accountKey, acc)
}

func GetAccount(ctx context.Context) *account.Account {
	acc, _ := ctx.Value(accountKey).(*account.Account)
	return acc
}

func GetSession(ctx context.Context) *websession.Session {
	ws, _ := websession.FromContext(ctx)
	return ws
}
