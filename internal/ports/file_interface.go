package ports

import (
	"context"
	"file-sharing-server/internal/model"
	"github.com/jmoiron/sqlx"
)

// Transactor : начало транзакции, возвращает исполнитель, rollback и commit
type Transactor interface {
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// FileRepository : SQL слой реестра файлов
type FileRepository interface {
	Transactor
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error
	GetByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error)
	LockByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error)
	PublicIDExists(ctx context.Context, exec sqlx.ExtContext, publicID string) (bool, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error)
	ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.File, error)
	UpdateName(ctx context.Context, exec sqlx.ExtContext, fileID int64, name string) (*model.File, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, fileID int64) error
}

// GrantRepository : таблица прав доступа (user <-> file)
type GrantRepository interface {
	AddGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error)
	RemoveGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error)
	HasGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error)
	ListGrantees(ctx context.Context, exec sqlx.ExtContext, fileID int64) ([]model.User, error)
	DeleteByFile(ctx context.Context, exec sqlx.ExtContext, fileID int64) (int64, error)
}

type FileService interface {
	Upload(ctx context.Context, actor string, input model.UploadInput) (*model.FileRecord, error)
	Download(ctx context.Context, actor string, publicID string) (*model.FileContent, error)
	Rename(ctx context.Context, actor string, publicID string, newName string) (*model.FileRecord, error)
	Delete(ctx context.Context, actor string, publicID string) error
	ListOwned(ctx context.Context, actor string) ([]model.FileRecord, error)
	ListShared(ctx context.Context, actor string) ([]model.File, error)
}

type AccessService interface {
	Grant(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error)
	Revoke(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error)
}
