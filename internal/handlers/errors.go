package handlers

import (
	"net/http"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/service"

	"go.uber.org/zap"
)

// businessFailure логирует ошибку и возвращает статус и сообщение для повторного показа формы.
func businessFailure(r *http.Request, err error) (int, string) {
	busErr := service.AsBusinessError(err)
	statusCode := mapBusinessErrorToHTTP(busErr.Code)

	if busErr.Code == service.CodeTechnical {
		logger.Error("HTTP: Техническая ошибка", busErr.Err,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Any("details", busErr.Details))
	} else {
		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", busErr.Code),
			zap.Int("http_status", statusCode),
			zap.String("request_id", middleware.GetRequestID(r.Context())))
	}
	return statusCode, busErr.Message
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeDuplicateUsername:
		return http.StatusConflict
	case service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodeAccountDisabled:
		return http.StatusForbidden
	case service.CodeForbidden:
		// чужая задача: дашборд с сообщением, без отдельного статуса
		return http.StatusOK
	case service.CodeTechnical:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
