package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// WriteJSON : пишет тело ответа в JSON с заданным статусом
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[util] ошибка записи ответа: %v", err)
	}
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	HandleErrorWithFields(w, message, statusCode, nil)
}

// HandleErrorWithFields : ошибка с описанием по полям (для 422)
func HandleErrorWithFields(w http.ResponseWriter, message string, statusCode int, fields map[string]string) {
	errorResponse := struct {
		Success bool              `json:"success"`
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors,omitempty"`
	}{
		Success: false,
		Code:    statusCode,
		Message: message,
		Errors:  fields,
	}

	WriteJSON(w, statusCode, errorResponse)
}
