package handlers

import (
	"net/http"
	"todoWeb/internal/handlers/dto"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

const (
	viewLogin           = "login"
	viewTasksDashboard  = "tasks/dashboard"
	viewNewTask         = "tasks/new"
	viewTaskDetails     = "tasks/details"
	viewProfile         = "users/profile"
	viewAdminDashboard  = "admin/accounts/dashboard"
	viewNewAccount      = "admin/accounts/new"
	viewCreateResult    = "admin/accounts/create-result"
	viewAccountDetails  = "admin/accounts/details"
	viewUpdateResult    = "admin/accounts/update-result"
	pathLogin           = "/login"
	pathTasksDashboard  = "/tasks/dashboard"
	pathNewTask         = "/tasks/new"
	pathProfile         = "/users/profile"
	pathAdminDashboard  = "/admin/accounts/dashboard"
	pathTaskDetailsBase = "/tasks/details?id="
)

// viewRenderer собирает JSON-представление страницы: имя вида, сообщение и шапку с пользователем.
type viewRenderer struct {
	sessions *websession.Manager
}

func (v viewRenderer) render(w http.ResponseWriter, r *http.Request, status int, view, message string, payload ...Payload) {
	ws := middleware.GetSession(r.Context())
	if message == "" && v.sessions != nil {
		message = v.sessions.PopFlash(r.Context(), ws)
	}

	all := []Payload{toPayload("view", view)}
	if message != "" {
		all = append(all, toPayload("message", message))
	}
	if acc := middleware.GetAccount(r.Context()); acc != nil {
		user := dto.CurrentUser{
			ID:        acc.ID,
			FirstName: acc.FirstName,
			LastName:  acc.LastName,
			IsAdmin:   acc.IsAdmin,
		}
		if ws != nil {
			user.FirstName, user.LastName = ws.FirstName, ws.LastName
			if ws.PreviousSession != nil {
				all = append(all, toPayload("previous_session", dto.FromSession(ws.PreviousSession)))
			}
		}
		all = append(all, toPayload("user", user))
	}
	all = append(all, payload...)

	responseWithJSON(w, status, all...)
}

// redirect с сообщением, которое покажет следующая страница.
func (v viewRenderer) redirect(w http.ResponseWriter, r *http.Request, target, flash string) {
	if flash != "" && v.sessions != nil {
		v.sessions.SetFlash(r.Context(), middleware.GetSession(r.Context()), flash)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func homePath(isAdmin bool) string {
	if isAdmin {
		return pathAdminDashboard
	}
	return pathTasksDashboard
}

// refreshDisplayName обновляет копию имени в веб-сессии после правки своего аккаунта.
func (v viewRenderer) refreshDisplayName(r *http.Request, accountID int64, firstName, lastName string) {
	ws := middleware.GetSession(r.Context())
	if ws == nil || ws.AccountID != accountID || v.sessions == nil {
		return
	}
	ws.FirstName, ws.LastName = firstName, lastName
	if err := v.sessions.Save(r.Context(), ws); err != nil {
		logger.Error("HTTP: Не удалось обновить веб-сессию", err, zap.Int64("account_id", accountID))
	}
}
