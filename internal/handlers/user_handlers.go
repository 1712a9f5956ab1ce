package handlers

import (
	"net/http"
	"strings"
	"todoWeb/internal/handlers/dto"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

const msgProfileUpdated = "Profile updated successfully!"

type UserHandler struct {
	viewRenderer
	accounts AccountService
}

func NewUserHandler(accounts AccountService, web *websession.Manager) *UserHandler {
	return &UserHandler{
		viewRenderer: viewRenderer{sessions: web},
		accounts:     accounts,
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	acc := middleware.GetAccount(r.Context())
	h.render(w, r, http.StatusOK, viewProfile, "",
		toPayload("account", dto.FromAccount(acc)),
	)
}

// UpdateProfile меняет имя и фамилию; непустой password заодно меняет пароль.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	acc := middleware.GetAccount(r.Context())

	if !parseForm(w, r) {
		return
	}

	form := dto.UpdateProfileForm{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Password:  r.PostFormValue("password"),
	}
	if err := validateForm(form); err != nil {
		_, message := businessFailure(r, err)
		h.redirect(w, r, pathProfile, message)
		return
	}

	updated := *acc
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName

	if err := h.accounts.UpdateAccount(r.Context(), &updated, service.UpdateOptions{Password: form.Password}); err != nil {
		_, message := businessFailure(r, err)
		h.redirect(w, r, pathProfile, message)
		return
	}
	if strings.TrimSpace(form.Password) != "" {
		logger.Info("HTTP: Пароль изменён пользователем", zap.Int64("account_id", acc.ID))
	}

	h.refreshDisplayName(r, acc.ID, updated.FirstName, updated.LastName)
	h.redirect(w, r, pathProfile, msgProfileUpdated)
}
