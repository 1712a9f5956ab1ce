package handlers

import (
	"errors"
	"mime"
	"net/http"
	"todoWeb/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type fieldMessenger interface {
	FieldMessages() map[string]string
}

func checkContentType(r *http.Request, targets ...string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, target := range targets {
		if mediaType == target {
			return true
		}
	}
	return false
}

// parseForm принимает только формы браузера.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if !checkContentType(r, "application/x-www-form-urlencoded", "multipart/form-data") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be a form encoding.")
		return false
	}
	if err := r.ParseForm(); err != nil {
		responseWithError(w, http.StatusBadRequest, "Malformed form data.")
		return false
	}
	return true
}

// validateForm превращает первое нарушение правил в VALIDATION_ERROR с сообщением формы.
func validateForm(form fieldMessenger) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return service.NewTechnicalError("validate_form", err)
	}

	first := fieldErrors[0]
	messages := form.FieldMessages()
	message, ok := messages[first.Field()+"."+first.Tag()]
	if !ok {
		message, ok = messages[first.Field()]
	}
	if !ok {
		message = "Invalid value for " + first.Field() + "."
	}
	return service.NewValidationError(first.Field(), message)
}
