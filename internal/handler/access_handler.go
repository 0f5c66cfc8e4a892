package handler

import (
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AccessHandler struct {
	ports.AccessService
}

func NewAccessHandler(accessService ports.AccessService) *AccessHandler {
	return &AccessHandler{accessService}
}

// GrantAccess godoc
// @Summary Выдача доступа соавтору
// @Description Владелец выдаёт доступ пользователю по email. Повторная выдача не создаёт дубликатов.
// @Tags Accesses
// @Accept json
// @Produce json
// @Param file_id path string true "Идентификатор файла"
// @Param body body requestresponse.AccessRequest true "Email соавтора"
// @Success 200 {array} requestresponse.AccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 422 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/{file_id}/accesses [post]
func (h *AccessHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.AccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	entries, err := h.AccessService.Grant(r.Context(), claims.UserUUID, chi.URLParam(r, "file_id"), req.Email)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AccessListFromModel(entries))
}

// RevokeAccess godoc
// @Summary Отзыв доступа
// @Description Владелец отзывает доступ соавтора по email
// @Tags Accesses
// @Accept json
// @Produce json
// @Param file_id path string true "Идентификатор файла"
// @Param body body requestresponse.AccessRequest true "Email соавтора"
// @Success 200 {array} requestresponse.AccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Файл, пользователь или доступ не найден"
// @Security ApiKeyAuth
// @Router /files/{file_id}/accesses [delete]
func (h *AccessHandler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.AccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	entries, err := h.AccessService.Revoke(r.Context(), claims.UserUUID, chi.URLParam(r, "file_id"), req.Email)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AccessListFromModel(entries))
}
