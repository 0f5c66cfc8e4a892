package requestresponse

// MessageResponse : успешный ответ без данных
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"Success"`
}

// DataResponse : успешный ответ с данными
type DataResponse struct {
	Success bool        `json:"success" example:"true"`
	Code    int         `json:"code" example:"200"`
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Code    int               `json:"code" example:"404"`
	Message string            `json:"message" example:"Not found"`
	Errors  map[string]string `json:"errors,omitempty"`
}
