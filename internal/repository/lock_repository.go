package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/util"
	"github.com/redis/go-redis/v9"
	"log"
	"time"
)

const lockRetryInterval = 50 * time.Millisecond

// releaseScript : удаляет ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var ErrLockTimeout = errors.New("не удалось получить блокировку за отведённое время")

// LockRepository : распределённая блокировка пространства имён на Redis (SET NX PX)
type LockRepository struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewLockRepository(rdb *config.RedisClient, ttl, wait time.Duration) *LockRepository {
	return &LockRepository{client: rdb.Client, ttl: ttl, wait: wait}
}

// Lock : ждёт освобождения не дольше wait, возвращает функцию освобождения
func (r *LockRepository) Lock(ctx context.Context, namespace string) (func(), error) {
	key := "lock:namespace:" + namespace

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, util.LogError("[LockRepo] ошибка генерации токена блокировки", err)
	}
	token := hex.EncodeToString(tokenBytes)

	deadline := time.Now().Add(r.wait)
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, util.LogError("[LockRepo] ошибка установки блокировки", err)
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, util.LogError("[LockRepo] "+namespace, ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	release := func() {
		// контекст запроса мог быть уже отменён, снимаем блокировку независимо от него
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
			log.Printf("[LockRepo] ошибка снятия блокировки %s: %v", key, err)
		}
	}

	return release, nil
}
