package util

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const publicIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const MinPublicIDLength = 10

var ErrPublicIDExhausted = errors.New("не удалось подобрать свободный идентификатор")

// GeneratePublicID : генерирует случайный URL-безопасный идентификатор длиной length символов
func GeneratePublicID(length int) (string, error) {
	if length < MinPublicIDLength {
		length = MinPublicIDLength
	}

	max := big.NewInt(int64(len(publicIDAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", LogError("[util] ошибка генерации идентификатора", err)
		}
		buf[i] = publicIDAlphabet[n.Int64()]
	}

	return string(buf), nil
}

// GenerateUniquePublicID : генерирует идентификатор и перегенерирует его при совпадении с уже занятым
func GenerateUniquePublicID(ctx context.Context, length int, attempts int, taken func(ctx context.Context, id string) (bool, error)) (string, error) {
	for i := 0; i < attempts; i++ {
		id, err := GeneratePublicID(length)
		if err != nil {
			return "", err
		}

		exists, err := taken(ctx, id)
		if err != nil {
			return "", LogError("[util] ошибка проверки идентификатора", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w после %d попыток", ErrPublicIDExhausted, attempts)
}
