package repository

import (
	"context"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/util"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb.Client, ttl}
}

func (r *CacheRepository) SetContent(ctx context.Context, fileID int64, data []byte) error {
	if err := r.client.Set(ctx, contentKey(fileID), data, r.ttl).Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка сохранения в Redis", err)
	}
	return nil
}

// GetContent : false, если записи нет в кэше
func (r *CacheRepository) GetContent(ctx context.Context, fileID int64) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, contentKey(fileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, util.LogError("[CacheRepo] ошибка получения файла из Redis", err)
	}
	return data, true, nil
}

func (r *CacheRepository) DeleteContent(ctx context.Context, fileID int64) error {
	if err := r.client.Del(ctx, contentKey(fileID)).Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка удаления файла из Redis", err)
	}
	return nil
}

// contentKey : files.id из BIGSERIAL не переиспользуется, поэтому запись
// удалённого файла недостижима ни через какой public id
func contentKey(fileID int64) string {
	return fmt.Sprintf("file:content:%d", fileID)
}
