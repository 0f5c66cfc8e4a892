package model

import "time"

type Role string

const (
	RoleAuthor   Role = "author"
	RoleCoAuthor Role = "co-author"
)

// AccessGrant : делегированный доступ соавтора; владелец здесь никогда не хранится
type AccessGrant struct {
	ID        int64     `db:"id"`
	FileID    int64     `db:"file_id"`
	UserUUID  string    `db:"user_uuid"`
	CreatedAt time.Time `db:"created_at"`
}

type AccessEntry struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     Role   `json:"type"`
}
