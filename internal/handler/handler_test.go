package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/service"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const actor = "owner-uuid"

type MockFileService struct{ mock.Mock }

func (m *MockFileService) Upload(ctx context.Context, actor string, input model.UploadInput) (*model.FileRecord, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, actor string, publicID string) (*model.FileContent, error) {
	args := m.Called(ctx, actor, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileContent), args.Error(1)
}

func (m *MockFileService) Rename(ctx context.Context, actor string, publicID string, newName string) (*model.FileRecord, error) {
	args := m.Called(ctx, actor, publicID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, actor string, publicID string) error {
	return m.Called(ctx, actor, publicID).Error(0)
}

func (m *MockFileService) ListOwned(ctx context.Context, actor string) ([]model.FileRecord, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]model.FileRecord), args.Error(1)
}

func (m *MockFileService) ListShared(ctx context.Context, actor string) ([]model.File, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]model.File), args.Error(1)
}

type MockAccessService struct{ mock.Mock }

func (m *MockAccessService) Grant(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error) {
	args := m.Called(ctx, actor, publicID, granteeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessEntry), args.Error(1)
}

func (m *MockAccessService) Revoke(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error) {
	args := m.Called(ctx, actor, publicID, granteeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessEntry), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	args := m.Called(ctx, email, password, userAgent, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokensPair), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, userAgent, ipAddress, accessToken, refreshToken string) (*model.TokensPair, error) {
	args := m.Called(ctx, userAgent, ipAddress, accessToken, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokensPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshTokenUUID string) error {
	return m.Called(ctx, refreshTokenUUID).Error(0)
}

// withActor : заменяет JWTMiddleware в тестах
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := &security.Claims{UserUUID: actor, RefreshTokenUUID: "session-uuid"}
		next.ServeHTTP(w, r.WithContext(security.WithClaims(r.Context(), claims)))
	})
}

func testUploads() config.UploadsConfig {
	return config.UploadsConfig{
		MaxUploadSizeMiB:  1,
		MaxFileSizeKiB:    1,
		AllowedExtensions: []string{"pdf", "png"},
	}
}

func newFileRouter(files *MockFileService, accesses *MockAccessService) *chi.Mux {
	fh := NewFileHandler(files, "http://files.local/", testUploads())
	ah := NewAccessHandler(accesses)

	r := chi.NewRouter()
	r.Route("/files", func(r chi.Router) {
		r.Use(withActor)
		r.Post("/", fh.UploadFiles)
		r.Get("/disk", fh.ListOwnedFiles)
		r.Get("/shared", fh.ListSharedFiles)
		r.Route("/{file_id}", func(r chi.Router) {
			r.Get("/", fh.DownloadFile)
			r.Patch("/", fh.RenameFile)
			r.Delete("/", fh.DeleteFile)
			r.Post("/accesses", ah.GrantAccess)
			r.Delete("/accesses", ah.RevokeAccess)
		})
	})
	return r
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) requestresponse.ErrorResponse {
	t.Helper()
	var resp requestresponse.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{service.ErrAuthorizationFailed, http.StatusUnauthorized, "Authorization failed"},
		{model.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
		{model.NewValidationError("name", "required"), http.StatusUnprocessableEntity, "Validation error"},
		{model.ErrForbidden, http.StatusForbidden, "Forbidden for you"},
		{model.ErrFileNotFound, http.StatusNotFound, "Not found"},
		{model.ErrBlobNotFound, http.StatusNotFound, "Not found"},
		{model.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{model.ErrGrantNotFound, http.StatusNotFound, "User has no access to this file"},
		{model.ErrBlobExists, http.StatusInternalServerError, "Internal server error"},
		{model.StorageFailure(model.ErrUserNotFound), http.StatusInternalServerError, "Internal server error"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, message := statusFor(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestUploadFiles_PerItemResults(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))

	files.On("Upload", mock.Anything, actor, model.UploadInput{
		OriginalName: "report.pdf",
		Extension:    "pdf",
		Data:         []byte("%PDF"),
	}).Return(&model.FileRecord{File: model.File{PublicID: "abc123xy09", Name: "report", Extension: "pdf"}}, nil)

	body, contentType := multipartBody(t, map[string][]byte{
		"report.pdf": []byte("%PDF"),
		"virus.exe":  []byte("MZ"),
		"big.png":    bytes.Repeat([]byte("x"), 2048),
	})
	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []requestresponse.UploadItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 3)

	byName := map[string]requestresponse.UploadItem{}
	for _, item := range items {
		byName[item.Name] = item
	}

	assert.True(t, byName["report.pdf"].Success)
	assert.Equal(t, "http://files.local/files/abc123xy09", byName["report.pdf"].URL)
	assert.Equal(t, http.StatusUnprocessableEntity, byName["virus.exe"].Code)
	assert.Equal(t, "Each file must be of type: pdf, png.", byName["virus.exe"].Message)
	assert.Equal(t, http.StatusUnprocessableEntity, byName["big.png"].Code)
	assert.Equal(t, "Each file may not be greater than 1 kilobytes.", byName["big.png"].Message)
	files.AssertNumberOfCalls(t, "Upload", 1)
}

func TestUploadFiles_ServiceErrorPerItem(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))

	files.On("Upload", mock.Anything, actor, mock.Anything).
		Return(nil, model.NewValidationError("files", "too many files with this name"))

	body, contentType := multipartBody(t, map[string][]byte{"report.pdf": []byte("%PDF")})
	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []requestresponse.UploadItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.False(t, items[0].Success)
	assert.Equal(t, http.StatusUnprocessableEntity, items[0].Code)
}

func TestUploadFiles_NoFiles(t *testing.T) {
	router := newFileRouter(new(MockFileService), new(MockAccessService))

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No files to upload", decodeError(t, rec).Message)
}

func TestDownloadFile(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))

	files.On("Download", mock.Anything, actor, "abc123xy09").
		Return(&model.FileContent{Filename: "report.pdf", Data: []byte("%PDF")}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/abc123xy09", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=report.pdf", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String())
}

func TestDownloadFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "forbidden", err: model.ErrForbidden, status: http.StatusForbidden},
		{name: "unknown file", err: model.ErrFileNotFound, status: http.StatusNotFound},
		{name: "missing content", err: model.ErrBlobNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := new(MockFileService)
			router := newFileRouter(files, new(MockAccessService))
			files.On("Download", mock.Anything, actor, "abc123xy09").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/abc123xy09", nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRenameFile(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))

	files.On("Rename", mock.Anything, actor, "abc123xy09", "annual").
		Return(&model.FileRecord{File: model.File{PublicID: "abc123xy09", Name: "annual"}}, nil)
	files.On("Rename", mock.Anything, actor, "abc123xy09", "").
		Return(nil, model.NewValidationError("name", "The name field is required."))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/files/abc123xy09", strings.NewReader(`{"name":"annual"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg requestresponse.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "Renamed", msg.Message)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/files/abc123xy09", strings.NewReader(`{"name":""}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Errors, "name")
}

func TestRenameFile_InvalidBody(t *testing.T) {
	router := newFileRouter(new(MockFileService), new(MockAccessService))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/files/abc123xy09", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFile(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))
	files.On("Delete", mock.Anything, actor, "abc123xy09").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/files/abc123xy09", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	files.AssertExpectations(t)
}

func TestListOwnedAndShared(t *testing.T) {
	files := new(MockFileService)
	router := newFileRouter(files, new(MockAccessService))

	files.On("ListOwned", mock.Anything, actor).Return([]model.FileRecord{{
		File: model.File{PublicID: "abc123xy09", Name: "report"},
		Accesses: []model.AccessEntry{
			{FullName: "Ivan Petrov", Email: "ivan@example.com", Role: model.RoleAuthor},
		},
	}}, nil)
	files.On("ListShared", mock.Anything, actor).Return([]model.File{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/disk", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var owned []requestresponse.OwnedFileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&owned))
	require.Len(t, owned, 1)
	assert.Equal(t, "http://files.local/files/abc123xy09", owned[0].URL)
	assert.Equal(t, "author", owned[0].Accesses[0].Type)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/shared", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGrantAndRevokeAccess(t *testing.T) {
	accesses := new(MockAccessService)
	router := newFileRouter(new(MockFileService), accesses)

	list := []model.AccessEntry{
		{FullName: "Ivan Petrov", Email: "ivan@example.com", Role: model.RoleAuthor},
		{FullName: "Anna Smirnova", Email: "anna@example.com", Role: model.RoleCoAuthor},
	}
	accesses.On("Grant", mock.Anything, actor, "abc123xy09", "anna@example.com").Return(list, nil)
	accesses.On("Revoke", mock.Anything, actor, "abc123xy09", "anna@example.com").Return(nil, model.ErrGrantNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/files/abc123xy09/accesses", strings.NewReader(`{"email":"anna@example.com"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []requestresponse.AccessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "co-author", resp[1].Type)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/files/abc123xy09/accesses", strings.NewReader(`{"email":"anna@example.com"}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User has no access to this file", decodeError(t, rec).Message)
}

func TestFileRoutes_RequireClaims(t *testing.T) {
	fh := NewFileHandler(new(MockFileService), "http://files.local", testUploads())

	rec := httptest.NewRecorder()
	fh.ListOwnedFiles(rec, httptest.NewRequest(http.MethodGet, "/files/disk", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	auth := new(MockAuthService)
	h := NewAuthenticationHandler(auth)

	auth.On("Login", mock.Anything, "ivan@example.com", "Secret1", mock.Anything, mock.Anything).
		Return(&model.TokensPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
	auth.On("Login", mock.Anything, "ivan@example.com", "wrong", mock.Anything, mock.Anything).
		Return(nil, service.ErrAuthorizationFailed)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/authorization", strings.NewReader(`{"email":"ivan@example.com","password":"Secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens requestresponse.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))
	assert.Equal(t, "access", tokens.Token)
	assert.Equal(t, "refresh", tokens.RefreshToken)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/authorization", strings.NewReader(`{"email":"ivan@example.com","password":"wrong"}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization failed", decodeError(t, rec).Message)
}

func TestRefreshToken(t *testing.T) {
	auth := new(MockAuthService)
	h := NewAuthenticationHandler(auth)

	auth.On("RefreshToken", mock.Anything, "agent", mock.Anything, "expired-access", "refresh").
		Return(&model.TokensPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	rec := httptest.NewRecorder()
	h.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{"refresh_token":"refresh"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{"refresh_token":"refresh"}`))
	req.Header.Set("Authorization", "Bearer expired-access")
	req.Header.Set("User-Agent", "agent")
	rec = httptest.NewRecorder()
	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var tokens requestresponse.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))
	assert.Equal(t, "new-access", tokens.Token)
}

func TestLogout(t *testing.T) {
	auth := new(MockAuthService)
	h := NewAuthenticationHandler(auth)
	auth.On("Logout", mock.Anything, "session-uuid").Return(nil)

	rec := httptest.NewRecorder()
	withActor(http.HandlerFunc(h.Logout)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	auth.AssertExpectations(t)
}
