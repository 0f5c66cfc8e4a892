package service

import (
	"errors"
	"file-sharing-server/internal/model"
)

// classify : ошибки известных видов возвращаются как есть, остальное считается сбоем хранилища
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrValidation):
		return err
	default:
		return model.StorageFailure(err)
	}
}

// actorFromUserErr : пользователь из токена не найден в БД, значит токен уже недействителен
func actorFromUserErr(err error) error {
	if errors.Is(err, model.ErrUserNotFound) {
		return model.ErrUnauthenticated
	}
	return classify(err)
}
