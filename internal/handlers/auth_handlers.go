package handlers

import (
	"net/http"
	"time"
	"todoWeb/internal/handlers/dto"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

type AuthHandler struct {
	viewRenderer
	auth  Authenticator
	audit SessionRecorder
}

func NewAuthHandler(auth Authenticator, audit SessionRecorder, web *websession.Manager) *AuthHandler {
	return &AuthHandler{
		viewRenderer: viewRenderer{sessions: web},
		auth:         auth,
		audit:        audit,
	}
}

// Root отправляет пользователя на его стартовую страницу.
func (h *AuthHandler) Root(w http.ResponseWriter, r *http.Request) {
	acc := middleware.GetAccount(r.Context())
	if acc == nil {
		http.Redirect(w, r, pathLogin, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, homePath(service.IsAdmin(acc)), http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, viewLogin, "")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !parseForm(w, r) {
		return
	}

	form := dto.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := validateForm(form); err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewLogin, message, toPayload("username", form.Username))
		return
	}

	acc, err := h.auth.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewLogin, message, toPayload("username", form.Username))
		return
	}

	sessionID := websession.NewID()
	previous, err := h.audit.StartSession(r.Context(), sessionID, acc.ID)
	if err != nil {
		// журнал сессий не должен мешать входу
		logger.Error("HTTP: Не удалось записать сессию", err, zap.Int64("account_id", acc.ID))
	}

	ws := &websession.Session{
		ID:              sessionID,
		AccountID:       acc.ID,
		FirstName:       acc.FirstName,
		LastName:        acc.LastName,
		PreviousSession: previous,
	}
	if err := h.sessions.Start(w, r, ws); err != nil {
		status, message := businessFailure(r, service.NewTechnicalError("start_web_session", err))
		h.render(w, r, status, viewLogin, message)
		return
	}

	logger.Info("HTTP_OUT: Вход выполнен",
		zap.Int64("account_id", acc.ID),
		zap.Bool("admin", service.IsAdmin(acc)),
		zap.Duration("ms", time.Since(start)))

	http.Redirect(w, r, homePath(service.IsAdmin(acc)), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := middleware.GetSession(r.Context())
	if ws != nil {
		if err := h.audit.EndSession(r.Context(), ws.ID); err != nil && !service.IsCode(err, service.CodeNotFound) {
			logger.Error("HTTP: Не удалось закрыть сессию", err, zap.String("session_id", ws.ID))
		}
		logger.Info("HTTP: Выход", zap.Int64("account_id", ws.AccountID))
	}
	h.sessions.Destroy(w, r, ws)
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}
