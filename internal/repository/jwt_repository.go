package repository

import (
	"context"
	"database/sql"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
	"fmt"
)

const sessionColumns = `uuid, user_uuid, token_hash, expire_at, used, user_agent, ip_address, created_at`

// JWTRepository : серверные сессии (refresh токены)
type JWTRepository struct {
	*config.Database
}

func NewJWTRepository(database *config.Database) *JWTRepository {
	return &JWTRepository{database}
}

// SaveRefreshToken сохраняет новую сессию; created_at проставляет БД
func (r *JWTRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (uuid, user_uuid, token_hash, expire_at, used, user_agent, ip_address)
		VALUES (:uuid, :user_uuid, :token_hash, :expire_at, :used, :user_agent, :ip_address)
	`

	if _, err := r.DB.NamedExecContext(ctx, query, refreshToken); err != nil {
		return util.LogError("[JWTRepo] ошибка сохранения сессии", err)
	}

	return nil
}

// MarkRefreshTokenUsedByUUID отзывает одну сессию.
// Уже отозванная или неизвестная сессия -> ErrUnauthenticated
func (r *JWTRepository) MarkRefreshTokenUsedByUUID(ctx context.Context, refreshTokenUUID string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE refresh_tokens SET used = TRUE WHERE uuid = $1 AND used = FALSE`, refreshTokenUUID)
	if err != nil {
		return util.LogError("[JWTRepo] не удалось отозвать сессию", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[JWTRepo] не удалось проверить результат отзыва", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: сессия %s не найдена или уже отозвана", model.ErrUnauthenticated, refreshTokenUUID)
	}

	return nil
}

// RevokeUserSessions отзывает все активные сессии пользователя, возвращает их число
func (r *JWTRepository) RevokeUserSessions(ctx context.Context, userUUID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE refresh_tokens SET used = TRUE WHERE user_uuid = $1 AND used = FALSE`, userUUID)
	if err != nil {
		return 0, util.LogError("[JWTRepo] не удалось отозвать сессии пользователя", err)
	}

	return result.RowsAffected()
}

// FindByUUID ищет сессию; отсутствие сессии означает невалидный токен
func (r *JWTRepository) FindByUUID(ctx context.Context, refreshTokenUUID string) (*model.RefreshToken, error) {
	var session model.RefreshToken
	err := r.DB.GetContext(ctx, &session, `SELECT `+sessionColumns+` FROM refresh_tokens WHERE uuid = $1`, refreshTokenUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: сессия %s не найдена", model.ErrUnauthenticated, refreshTokenUUID)
	}
	if err != nil {
		return nil, util.LogError("[JWTRepo] ошибка чтения сессии", err)
	}

	return &session, nil
}
