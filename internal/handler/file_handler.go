package handler

import (
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type FileHandler struct {
	ports.FileService
	publicURL string
	uploads   config.UploadsConfig
}

func NewFileHandler(fileService ports.FileService, publicURL string, uploads config.UploadsConfig) *FileHandler {
	return &FileHandler{
		FileService: fileService,
		publicURL:   strings.TrimRight(publicURL, "/"),
		uploads:     uploads,
	}
}

func (h *FileHandler) fileURL(publicID string) string {
	return h.publicURL + "/files/" + publicID
}

// UploadFiles godoc
// @Summary Загрузка файлов
// @Description Загружает один или несколько файлов (поле files). Каждый файл обрабатывается отдельно,
// ошибка одного файла не прерывает загрузку остальных.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Файлы"
// @Success 200 {array} requestresponse.UploadItem
// @Failure 400 {object} requestresponse.ErrorResponse "Нет файлов в запросе"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse "Слишком большой запрос"
// @Security ApiKeyAuth
// @Router /files [post]
func (h *FileHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	maxRequest := int64(h.uploads.MaxUploadSizeMiB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxRequest)
	if err := r.ParseMultipartForm(maxRequest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.HandleError(w, "Request entity too large", http.StatusRequestEntityTooLarge)
			return
		}
		util.HandleError(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[FileHandler] не удалось удалить временные файлы: %v", err)
		}
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["files[]"]
	}
	if len(headers) == 0 {
		util.HandleError(w, "No files to upload", http.StatusBadRequest)
		return
	}

	items := make([]requestresponse.UploadItem, 0, len(headers))
	for _, header := range headers {
		items = append(items, h.uploadOne(r, claims.UserUUID, header))
	}

	util.WriteJSON(w, http.StatusOK, items)
}

func (h *FileHandler) uploadOne(r *http.Request, actor string, header *multipart.FileHeader) requestresponse.UploadItem {
	item := requestresponse.UploadItem{Name: header.Filename}

	if err := h.validatePart(header); err != nil {
		item.Code, item.Message = http.StatusUnprocessableEntity, err.Error()
		return item
	}

	part, err := header.Open()
	if err != nil {
		item.Code, item.Message = http.StatusInternalServerError, "Internal server error"
		return item
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		item.Code, item.Message = http.StatusInternalServerError, "Internal server error"
		return item
	}

	_, extension := util.SplitFilename(header.Filename)
	record, err := h.FileService.Upload(r.Context(), actor, model.UploadInput{
		OriginalName: filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/")),
		Extension:    extension,
		Data:         data,
	})
	if err != nil {
		log.Printf("[FileHandler] ошибка загрузки %q: %v", header.Filename, err)
		item.Code, item.Message = statusFor(err)
		return item
	}

	item.Success = true
	item.Code = http.StatusOK
	item.Message = "Success"
	item.URL = h.fileURL(record.File.PublicID)
	item.FileID = record.File.PublicID
	return item
}

// validatePart : размер и расширение каждого файла
func (h *FileHandler) validatePart(header *multipart.FileHeader) error {
	if header.Size > int64(h.uploads.MaxFileSizeKiB)<<10 {
		return fmt.Errorf("Each file may not be greater than %d kilobytes.", h.uploads.MaxFileSizeKiB)
	}

	_, extension := util.SplitFilename(header.Filename)
	if !h.uploads.IsAllowedExtension(extension) {
		return fmt.Errorf("Each file must be of type: %s.", strings.Join(h.uploads.AllowedExtensions, ", "))
	}

	return nil
}

// DownloadFile godoc
// @Summary Скачивание файла
// @Description Отдаёт содержимое файла владельцу или соавтору под именем name.extension
// @Tags Files
// @Produce octet-stream
// @Param file_id path string true "Идентификатор файла"
// @Success 200 {file} file
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/{file_id} [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	content, err := h.FileService.Download(r.Context(), claims.UserUUID, chi.URLParam(r, "file_id"))
	if err != nil {
		sendServiceError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(content.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": content.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content.Data); err != nil {
		log.Printf("[FileHandler] ошибка отправки файла: %v", err)
	}
}

// RenameFile godoc
// @Summary Переименование файла
// @Description Меняет отображаемое имя файла. Доступно только владельцу.
// @Tags Files
// @Accept json
// @Produce json
// @Param file_id path string true "Идентификатор файла"
// @Param body body requestresponse.RenameFileRequest true "Новое имя"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 422 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/{file_id} [patch]
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.RenameFileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if _, err := h.FileService.Rename(r.Context(), claims.UserUUID, chi.URLParam(r, "file_id"), req.Name); err != nil {
		sendServiceError(w, err)
		return
	}

	sendMessage(w, http.StatusOK, "Renamed")
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Удаляет содержимое, все выданные доступы и запись о файле. Доступно только владельцу.
// @Tags Files
// @Produce json
// @Param file_id path string true "Идентификатор файла"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/{file_id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.FileService.Delete(r.Context(), claims.UserUUID, chi.URLParam(r, "file_id")); err != nil {
		sendServiceError(w, err)
		return
	}

	sendMessage(w, http.StatusOK, "File deleted")
}

// ListOwnedFiles godoc
// @Summary Файлы пользователя
// @Description Файлы, загруженные текущим пользователем, вместе со списками доступа
// @Tags Files
// @Produce json
// @Success 200 {array} requestresponse.OwnedFileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/disk [get]
func (h *FileHandler) ListOwnedFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	records, err := h.FileService.ListOwned(r.Context(), claims.UserUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	resp := make([]requestresponse.OwnedFileResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, requestresponse.OwnedFileFromModel(record, h.fileURL(record.File.PublicID)))
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// ListSharedFiles godoc
// @Summary Доступные файлы
// @Description Чужие файлы, к которым текущему пользователю выдан доступ
// @Tags Files
// @Produce json
// @Success 200 {array} requestresponse.SharedFileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /files/shared [get]
func (h *FileHandler) ListSharedFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	files, err := h.FileService.ListShared(r.Context(), claims.UserUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	resp := make([]requestresponse.SharedFileResponse, 0, len(files))
	for _, file := range files {
		resp = append(resp, requestresponse.SharedFileFromModel(file, h.fileURL(file.PublicID)))
	}

	util.WriteJSON(w, http.StatusOK, resp)
}
