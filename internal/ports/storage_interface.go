package ports

import "context"

// BlobStore : хранилище содержимого файлов в плоском пространстве имён
type BlobStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Write : создаёт объект; если имя занято, возвращает model.ErrBlobExists
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// NamespaceLocker : взаимное исключение загрузок в одно пространство имён
type NamespaceLocker interface {
	Lock(ctx context.Context, namespace string) (func(), error)
}
