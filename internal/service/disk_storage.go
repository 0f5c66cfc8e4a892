package service

import (
	"context"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DiskStorage : хранилище блобов на локальном диске, одна директория на пространство имён
type DiskStorage struct {
	fs afero.Fs
}

func NewDiskStorage(root, namespace string) (*DiskStorage, error) {
	return NewDiskStorageFs(afero.NewOsFs(), filepath.Join(root, namespace))
}

// NewDiskStorageFs : хранилище поверх произвольной afero.Fs (в тестах MemMapFs)
func NewDiskStorageFs(base afero.Fs, dir string) (*DiskStorage, error) {
	if err := base.MkdirAll(dir, 0o755); err != nil {
		return nil, util.LogError("[DiskStorage] не удалось создать директорию хранилища", err)
	}
	return &DiskStorage{fs: afero.NewBasePathFs(base, dir)}, nil
}

func (d *DiskStorage) Exists(_ context.Context, name string) (bool, error) {
	ok, err := afero.Exists(d.fs, name)
	if err != nil {
		return false, model.StorageFailure(util.LogError("[DiskStorage] ошибка проверки файла", err))
	}
	return ok, nil
}

// Write : O_EXCL гарантирует, что уже существующий файл не будет перезаписан
func (d *DiskStorage) Write(_ context.Context, name string, data []byte) error {
	f, err := d.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return model.ErrBlobExists
		}
		return model.StorageFailure(util.LogError("[DiskStorage] не удалось создать файл", err))
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = d.fs.Remove(name)
		return model.StorageFailure(util.LogError("[DiskStorage] ошибка записи файла", err))
	}
	if err := f.Close(); err != nil {
		_ = d.fs.Remove(name)
		return model.StorageFailure(util.LogError("[DiskStorage] ошибка закрытия файла", err))
	}

	return nil
}

func (d *DiskStorage) Read(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(d.fs, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.ErrBlobNotFound
	}
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[DiskStorage] ошибка чтения файла", err))
	}
	return data, nil
}

// Delete : отсутствующий файл не считается ошибкой
func (d *DiskStorage) Delete(_ context.Context, name string) error {
	err := d.fs.Remove(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return model.StorageFailure(util.LogError("[DiskStorage] не удалось удалить файл", err))
	}
	return nil
}
