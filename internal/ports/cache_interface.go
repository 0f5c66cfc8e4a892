package ports

import (
	"context"
)

// CacheRepository : Redis слой, кэш содержимого файлов по внутреннему id.
// Права и путь в хранилище в кэше не хранятся, их даёт только запись в БД.
type CacheRepository interface {
	SetContent(ctx context.Context, fileID int64, data []byte) error
	GetContent(ctx context.Context, fileID int64) ([]byte, bool, error)
	DeleteContent(ctx context.Context, fileID int64) error
}
