package repository

import (
	"context"
	"database/sql"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
	"github.com/jmoiron/sqlx"
)

const fileColumns = `id, public_id, owner_uuid, name, extension, storage_path, created_at, updated_at`

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняем новый файл, заполняет id и временные метки
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	query := `
		INSERT INTO files (public_id, owner_uuid, name, extension, storage_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := exec.QueryRowxContext(ctx, query,
		file.PublicID,
		file.OwnerUUID,
		file.Name,
		file.Extension,
		file.StoragePath,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return util.LogError("[FileRepo] не удалось сохранить файл", err)
	}

	return nil
}

// GetByPublicID : возвращает файл по публичному идентификатору или model.ErrFileNotFound
func (r *FileRepository) GetByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error) {
	return r.getOne(ctx, exec, `SELECT `+fileColumns+` FROM files WHERE public_id = $1`, publicID)
}

// LockByPublicID : то же, что GetByPublicID, но блокирует строку до конца транзакции
func (r *FileRepository) LockByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error) {
	return r.getOne(ctx, exec, `SELECT `+fileColumns+` FROM files WHERE public_id = $1 FOR UPDATE`, publicID)
}

func (r *FileRepository) getOne(ctx context.Context, exec sqlx.ExtContext, query string, args ...interface{}) (*model.File, error) {
	var file model.File
	err := sqlx.GetContext(ctx, exec, &file, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrFileNotFound
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить файл", err)
	}

	return &file, nil
}

// PublicIDExists : занят живым файлом или был занят удалённым
func (r *FileRepository) PublicIDExists(ctx context.Context, exec sqlx.ExtContext, publicID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, `
		SELECT EXISTS (SELECT 1 FROM files WHERE public_id = $1)
			OR EXISTS (SELECT 1 FROM retired_public_ids WHERE public_id = $1)
	`, publicID)
	if err != nil {
		return false, util.LogError("[FileRepo] ошибка проверки идентификатора", err)
	}
	return exists, nil
}

// ListByOwner : файлы владельца в порядке загрузки
func (r *FileRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error) {
	files := []model.File{}
	err := sqlx.SelectContext(ctx, exec, &files, `
		SELECT `+fileColumns+`
		FROM files
		WHERE owner_uuid = $1
		ORDER BY created_at, id
	`, ownerUUID)
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить файлы владельца", err)
	}
	return files, nil
}

// ListSharedWith : файлы, к которым у пользователя есть grant, без его собственных
func (r *FileRepository) ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.File, error) {
	files := []model.File{}
	err := sqlx.SelectContext(ctx, exec, &files, `
		SELECT f.id, f.public_id, f.owner_uuid, f.name, f.extension, f.storage_path, f.created_at, f.updated_at
		FROM files AS f
		INNER JOIN file_grants AS g ON g.file_id = f.id
		WHERE g.user_uuid = $1 AND f.owner_uuid <> $1
		ORDER BY g.id
	`, userUUID)
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить доступные файлы", err)
	}
	return files, nil
}

// UpdateName : меняет только отображаемое имя
func (r *FileRepository) UpdateName(ctx context.Context, exec sqlx.ExtContext, fileID int64, name string) (*model.File, error) {
	return r.getOne(ctx, exec, `
		UPDATE files
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+fileColumns, fileID, name)
}

// Delete : удаляет запись и выводит её public id из оборота
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileID int64) error {
	result, err := exec.ExecContext(ctx, `
		WITH deleted AS (
			DELETE FROM files WHERE id = $1 RETURNING public_id
		)
		INSERT INTO retired_public_ids (public_id)
		SELECT public_id FROM deleted
	`, fileID)
	if err != nil {
		return util.LogError("[FileRepo] не удалось удалить файл", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[FileRepo] не удалось проверить удаление файла", err)
	}
	if rowsAffected == 0 {
		return model.ErrFileNotFound
	}

	return nil
}
