package repository

import (
	"context"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
	"github.com/jmoiron/sqlx"
)

type GrantRepository struct {
	database *config.Database
}

func NewGrantRepository(database *config.Database) *GrantRepository {
	return &GrantRepository{database: database}
}

// AddGrant : выдаёт доступ; повторная выдача не создаёт дубликат, возвращает false
func (r *GrantRepository) AddGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	result, err := exec.ExecContext(ctx, `
		INSERT INTO file_grants (file_id, user_uuid)
		VALUES ($1, $2)
		ON CONFLICT (file_id, user_uuid) DO NOTHING
	`, fileID, userUUID)
	if err != nil {
		return false, util.LogError("[GrantRepo] не удалось предоставить доступ к файлу", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[GrantRepo] не удалось проверить выдачу доступа", err)
	}

	return rowsAffected > 0, nil
}

// RemoveGrant : возвращает false, если такого доступа не было
func (r *GrantRepository) RemoveGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	result, err := exec.ExecContext(ctx, `
		DELETE FROM file_grants
		WHERE file_id = $1 AND user_uuid = $2
	`, fileID, userUUID)
	if err != nil {
		return false, util.LogError("[GrantRepo] не удалось удалить доступ к файлу", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[GrantRepo] не удалось проверить удаление доступа", err)
	}

	return rowsAffected > 0, nil
}

func (r *GrantRepository) HasGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, `
		SELECT EXISTS (SELECT 1 FROM file_grants WHERE file_id = $1 AND user_uuid = $2)
	`, fileID, userUUID)
	if err != nil {
		return false, util.LogError("[GrantRepo] ошибка проверки доступа", err)
	}
	return exists, nil
}

// ListGrantees : соавторы файла в порядке выдачи доступа
func (r *GrantRepository) ListGrantees(ctx context.Context, exec sqlx.ExtContext, fileID int64) ([]model.User, error) {
	users := []model.User{}
	err := sqlx.SelectContext(ctx, exec, &users, `
		SELECT u.uuid, u.first_name, u.last_name, u.email, u.password_hash, u.created_at
		FROM file_grants AS g
		INNER JOIN users AS u ON u.uuid = g.user_uuid
		WHERE g.file_id = $1
		ORDER BY g.id
	`, fileID)
	if err != nil {
		return nil, util.LogError("[GrantRepo] не удалось получить список соавторов", err)
	}
	return users, nil
}

func (r *GrantRepository) DeleteByFile(ctx context.Context, exec sqlx.ExtContext, fileID int64) (int64, error) {
	result, err := exec.ExecContext(ctx, `DELETE FROM file_grants WHERE file_id = $1`, fileID)
	if err != nil {
		return 0, util.LogError("[GrantRepo] не удалось удалить доступы файла", err)
	}
	return result.RowsAffected()
}
