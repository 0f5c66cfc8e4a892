package handler

import (
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
	"log"
	"net/http"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя и сразу выдаёт пару токенов.
// Пароль: минимум 3 символа, строчная и заглавная буква и цифра.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.TokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 422 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /registration [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.UserService.Register(r.Context(), model.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		log.Printf("[UserHandler] ошибка регистрации: %v", err)
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.TokenResponse{
		Success:      true,
		Code:         http.StatusCreated,
		Message:      "Success",
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя, которому принадлежит токен
// @Tags Users
// @Produce json
// @Success 200 {object} requestresponse.DataResponse{data=requestresponse.UserResponse}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /me [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), claims.UserUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.DataResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Success",
		Data:    requestresponse.UserFromModel(user),
	})
}

// DeleteCurrentUser godoc
// @Summary Удаление аккаунта
// @Description Удаляет все файлы пользователя вместе с содержимым, затем сам аккаунт.
// Доступы, выданные пользователю к чужим файлам, исчезают.
// @Tags Users
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /me [delete]
func (h *UserHandler) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), claims.UserUUID); err != nil {
		log.Printf("[UserHandler] ошибка удаления аккаунта %s: %v", claims.UserUUID, err)
		sendServiceError(w, err)
		return
	}

	sendMessage(w, http.StatusOK, "Account deleted")
}
