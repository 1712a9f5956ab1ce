package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"todoWeb/internal/handlers/dto"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/models/account"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

const (
	msgAccountCreated   = "Successfully created a new account."
	msgAccountUpdated   = "Account updated successfully!"
	msgPasswordReset    = "Account updated successfully! Password has been reset."
	msgPasswordChanged  = "Account updated successfully! Password has been changed."
	msgNoSuchAccount    = "No such account exists."
	msgUpdateNoSuchUser = "Update failed - Account doesn't exist!"
)

type AdminHandler struct {
	viewRenderer
	accounts AccountService
}

func NewAdminHandler(accounts AccountService, web *websession.Manager) *AdminHandler {
	return &AdminHandler{
		viewRenderer: viewRenderer{sessions: web},
		accounts:     accounts,
	}
}

func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pathAdminDashboard, http.StatusSeeOther)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewAdminDashboard, message,
			toPayload("accounts", []dto.AccountResponse{}))
		return
	}

	h.render(w, r, http.StatusOK, viewAdminDashboard, "",
		toPayload("accounts", dto.FromAccountList(accounts)),
	)
}

func (h *AdminHandler) NewAccount(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, viewNewAccount, "")
}

func (h *AdminHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	form := dto.CreateAccountForm{
		Username:  r.PostFormValue("username"),
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
	}
	echo := []Payload{
		toPayload("username", strings.TrimSpace(form.Username)),
		toPayload("first_name", strings.TrimSpace(form.FirstName)),
		toPayload("last_name", strings.TrimSpace(form.LastName)),
	}

	if err := validateForm(form); err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewCreateResult, message, echo...)
		return
	}

	created, err := h.accounts.CreateAccount(r.Context(), form.Username, form.FirstName, form.LastName)
	if err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewCreateResult, message, echo...)
		return
	}

	logger.Info("HTTP_OUT: Аккаунт создан администратором",
		zap.Int64("account_id", created.ID),
		zap.Int64("admin_id", middleware.GetAccount(r.Context()).ID))
	h.render(w, r, http.StatusOK, viewCreateResult, msgAccountCreated,
		toPayload("account", dto.FromAccount(created)),
	)
}

func (h *AdminHandler) AccountDetails(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimSpace(r.URL.Query().Get("id"))
	if rawID == "" {
		h.render(w, r, http.StatusNotFound, viewAccountDetails, msgNoSuchAccount)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		logger.Warn("HTTP: Неверный id аккаунта", zap.String("id", rawID))
		h.render(w, r, http.StatusBadRequest, viewAccountDetails, dto.MsgInvalidAccountID)
		return
	}

	acc, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewAccountDetails, message)
		return
	}

	h.render(w, r, http.StatusOK, viewAccountDetails, "",
		toPayload("account", dto.FromAccount(acc)),
		toPayload("statuses", dto.AccountStatusOptions()),
	)
}

// UpdateAccount: resetPassword имеет приоритет над новым паролем.
func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	form := dto.UpdateAccountForm{
		AccountID:     r.PostFormValue("accountID"),
		Username:      r.PostFormValue("username"),
		FirstName:     r.PostFormValue("firstName"),
		LastName:      r.PostFormValue("lastName"),
		Password:      r.PostFormValue("password"),
		Status:        r.PostFormValue("status"),
		ResetPassword: parseCheckbox(r.PostFormValue("resetPassword")),
	}
	echo := toPayload("account", map[string]string{
		"id":         form.AccountID,
		"username":   form.Username,
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"status_id":  form.Status,
	})

	if err := validateForm(form); err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewUpdateResult, message, echo)
		return
	}

	id, err := strconv.ParseInt(form.AccountID, 10, 64)
	if err != nil {
		h.render(w, r, http.StatusBadRequest, viewUpdateResult, dto.MsgInvalidAccountID, echo)
		return
	}

	acc, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		status, message := businessFailure(r, err)
		if service.IsCode(err, service.CodeNotFound) {
			message = msgUpdateNoSuchUser
		}
		h.render(w, r, status, viewUpdateResult, message, echo)
		return
	}

	statusID, _ := strconv.Atoi(form.Status)
	acc.FirstName = form.FirstName
	acc.LastName = form.LastName
	acc.StatusID = account.Status(statusID)

	opts := service.UpdateOptions{ResetPassword: form.ResetPassword, Password: form.Password}
	if err := h.accounts.UpdateAccount(r.Context(), acc, opts); err != nil {
		status, message := businessFailure(r, err)
		h.render(w, r, status, viewUpdateResult, message, echo)
		return
	}

	message := msgAccountUpdated
	switch {
	case form.ResetPassword:
		message = msgPasswordReset
	case strings.TrimSpace(form.Password) != "":
		message = msgPasswordChanged
	}

	h.refreshDisplayName(r, acc.ID, acc.FirstName, acc.LastName)

	logger.Info("HTTP_OUT: Аккаунт обновлён администратором",
		zap.Int64("account_id", acc.ID),
		zap.Bool("reset_password", form.ResetPassword))
	h.render(w, r, http.StatusOK, viewUpdateResult, message,
		toPayload("account", dto.FromAccount(acc)),
	)
}

func parseCheckbox(value string) bool {
	if value == "on" {
		return true
	}
	checked, _ := strconv.ParseBool(value)
	return checked
}
