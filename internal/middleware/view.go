package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	viewLogin          = "login"
	viewTasksDashboard = "tasks/dashboard"
	viewAdminDashboard = "admin/accounts/dashboard"
	viewError          = "error"

	MsgTooManyRequests = "Too many requests. Please try again later."
)

// viewForPath выбирает страницу, на которой показать ошибку до того, как запрос дошёл до обработчика.
func viewForPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/admin"):
		return viewAdminDashboard
	case strings.HasPrefix(path, "/tasks"), strings.HasPrefix(path, "/users"):
		return viewTasksDashboard
	default:
		return viewLogin
	}
}

// renderView отдаёт тот же JSON-вид, что и обработчики: view и message.
func renderView(w http.ResponseWriter, r *http.Request, status int, view, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"view":       view,
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}
