package requestresponse

import "file-sharing-server/internal/model"

// UploadItem : результат загрузки одного файла
type UploadItem struct {
	Success bool   `json:"success" example:"true"`
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"Success"`
	Name    string `json:"name,omitempty" example:"report.pdf"`
	URL     string `json:"url,omitempty" example:"http://localhost:8080/files/abc123xy09"`
	FileID  string `json:"file_id,omitempty" example:"abc123xy09"`
}

// AccessResponse : элемент списка доступа
type AccessResponse struct {
	FullName string `json:"fullname" example:"Ivan Petrov"`
	Email    string `json:"email" example:"ivan@example.com"`
	Type     string `json:"type" example:"author"`
	Code     int    `json:"code" example:"200"`
}

// OwnedFileResponse : файл владельца вместе со списком доступа
type OwnedFileResponse struct {
	FileID   string           `json:"file_id" example:"abc123xy09"`
	Name     string           `json:"name" example:"report"`
	Code     int              `json:"code" example:"200"`
	URL      string           `json:"url" example:"http://localhost:8080/files/abc123xy09"`
	Accesses []AccessResponse `json:"accesses"`
}

// SharedFileResponse : файл, доступный пользователю как соавтору
type SharedFileResponse struct {
	FileID string `json:"file_id" example:"abc123xy09"`
	Code   int    `json:"code" example:"200"`
	Name   string `json:"name" example:"report"`
	URL    string `json:"url" example:"http://localhost:8080/files/abc123xy09"`
}

// RenameFileRequest : тело запроса на переименование
type RenameFileRequest struct {
	Name string `json:"name" example:"annual-report"`
}

// AccessRequest : тело запроса на выдачу или отзыв доступа
type AccessRequest struct {
	Email string `json:"email" example:"coauthor@example.com"`
}

func AccessListFromModel(entries []model.AccessEntry) []AccessResponse {
	out := make([]AccessResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccessResponse{
			FullName: e.FullName,
			Email:    e.Email,
			Type:     string(e.Role),
			Code:     200,
		})
	}
	return out
}

func OwnedFileFromModel(record model.FileRecord, url string) OwnedFileResponse {
	return OwnedFileResponse{
		FileID:   record.File.PublicID,
		Name:     record.File.Name,
		Code:     200,
		URL:      url,
		Accesses: AccessListFromModel(record.Accesses),
	}
}

func SharedFileFromModel(file model.File, url string) SharedFileResponse {
	return SharedFileResponse{
		FileID: file.PublicID,
		Code:   200,
		Name:   file.Name,
		URL:    url,
	}
}
