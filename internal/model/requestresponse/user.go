package requestresponse

import "file-sharing-server/internal/model"

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	FirstName string `json:"first_name" example:"Ivan"`
	LastName  string `json:"last_name" example:"Petrov"`
	Email     string `json:"email" example:"ivan@example.com"`
	Password  string `json:"password" example:"Passw0rd"`
}

// UserResponse : данные пользователя
type UserResponse struct {
	UUID     string `json:"uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	FullName string `json:"fullname" example:"Ivan Petrov"`
	Email    string `json:"email" example:"ivan@example.com"`
}

func UserFromModel(user *model.User) UserResponse {
	return UserResponse{
		UUID:     user.UUID,
		FullName: user.FullName(),
		Email:    user.Email,
	}
}
