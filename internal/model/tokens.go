package model

import "time"

// RefreshToken : серверная сессия. Клиент держит сырой refresh токен,
// в БД лежит только его bcrypt хэш. used = true означает, что сессия отозвана.
type RefreshToken struct {
	UUID      string    `db:"uuid"`
	UserUUID  string    `db:"user_uuid"`
	TokenHash string    `db:"token_hash"`
	ExpireAt  time.Time `db:"expire_at"`
	Used      bool      `db:"used"`
	UserAgent string    `db:"user_agent"`
	IpAddress string    `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpireAt)
}

// IssuedTo : сессия принадлежит владельцу access токена
func (t *RefreshToken) IssuedTo(userUUID string) bool {
	return t.UserUUID == userUUID
}

// Usable : сессию можно предъявлять от имени userUUID
func (t *RefreshToken) Usable(userUUID string, now time.Time) bool {
	return !t.Used && t.IssuedTo(userUUID) && !t.Expired(now)
}

// TokensPair : выдаётся при входе, регистрации и обновлении сессии
type TokensPair struct {
	AccessToken  string
	RefreshToken string
}
