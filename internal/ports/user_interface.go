package ports

import (
	"context"
	"file-sharing-server/internal/model"
	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Transactor
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	EmailExists(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error)
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type UserService interface {
	Register(ctx context.Context, input model.RegisterInput, userAgent, ipAddress string) (*model.TokensPair, error)
	GetUser(ctx context.Context, actor string) (*model.User, error)
	DeleteAccount(ctx context.Context, actor string) error
}
