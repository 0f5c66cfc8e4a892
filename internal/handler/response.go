package handler

import (
	"encoding/json"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/service"
	"file-sharing-server/internal/util"
	"log"
	"net/http"
)

// statusFor : вид ошибки -> HTTP статус и сообщение для клиента
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAuthorizationFailed):
		return http.StatusUnauthorized, "Authorization failed"
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity, "Validation error"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "Forbidden for you"
	case errors.Is(err, model.ErrStorage):
		return http.StatusInternalServerError, "Internal server error"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, model.ErrGrantNotFound):
		return http.StatusNotFound, "User has no access to this file"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func sendServiceError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[handler] внутренняя ошибка: %v", err)
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		util.HandleErrorWithFields(w, message, status, validationErr.Fields)
		return
	}
	util.HandleError(w, message, status)
}

func sendMessage(w http.ResponseWriter, statusCode int, message string) {
	util.WriteJSON(w, statusCode, requestresponse.MessageResponse{
		Success: true,
		Code:    statusCode,
		Message: message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return err
	}
	return nil
}

// currentClaims : claims, положенные JWTMiddleware; без них запрос не аутентифицирован
func currentClaims(w http.ResponseWriter, r *http.Request) (*security.Claims, bool) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return nil, false
	}
	return claims, true
}
