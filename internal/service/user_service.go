package service

import (
	"context"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	fileRepository ports.FileRepository
	fileService    ports.FileService
	jwtService     ports.JWTServiceInterface
	jwtRepository  ports.JWTRepositoryInterface
}

func NewUserService(
	userRepository ports.UserRepository,
	fileRepository ports.FileRepository,
	fileService ports.FileService,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		fileRepository: fileRepository,
		fileService:    fileService,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
	}
}

// Register : создаёт пользователя и сразу открывает для него сессию
func (s *UserService) Register(ctx context.Context, input model.RegisterInput, userAgent, ipAddress string) (*model.TokensPair, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := util.ValidateStruct(input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	}

	exec, rollback, commit, err := s.userRepository.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(fmt.Errorf("[UserService] ошибка начала транзакции: %w", err))
	}
	defer rollback()

	created, err := s.userRepository.CreateUser(ctx, exec, user)
	if err != nil {
		return nil, classify(err)
	}

	if err := commit(); err != nil {
		return nil, model.StorageFailure(fmt.Errorf("[UserService] ошибка коммита транзакции: %w", err))
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка генерации токенов: %w", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress
	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, model.StorageFailure(fmt.Errorf("[UserService] не удалось сохранить refresh токен: %w", err))
	}

	return tokens, nil
}

func (s *UserService) GetUser(ctx context.Context, actor string) (*model.User, error) {
	exec, rollback, _, err := s.userRepository.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(fmt.Errorf("[UserService] ошибка начала транзакции: %w", err))
	}
	defer rollback()

	user, err := s.userRepository.FindByUUID(ctx, exec, actor)
	if err != nil {
		return nil, actorFromUserErr(err)
	}

	return user, nil
}

// DeleteAccount : удаляет все файлы пользователя через реестр, затем самого пользователя.
// Доступы, выданные ему как соавтору, и его сессии удаляются каскадно.
func (s *UserService) DeleteAccount(ctx context.Context, actor string) error {
	exec, rollback, _, err := s.fileRepository.BeginTX(ctx)
	if err != nil {
		return model.StorageFailure(fmt.Errorf("[UserService] ошибка начала транзакции: %w", err))
	}
	owned, err := s.fileRepository.ListByOwner(ctx, exec, actor)
	_ = rollback()
	if err != nil {
		return classify(err)
	}

	for _, file := range owned {
		err := s.fileService.Delete(ctx, actor, file.PublicID)
		if err != nil && !errors.Is(err, model.ErrFileNotFound) {
			return err
		}
	}

	exec, rollback, commit, err := s.userRepository.BeginTX(ctx)
	if err != nil {
		return model.StorageFailure(fmt.Errorf("[UserService] ошибка начала транзакции: %w", err))
	}
	defer rollback()

	if err := s.userRepository.DeleteUser(ctx, exec, actor); err != nil {
		return actorFromUserErr(err)
	}

	if err := commit(); err != nil {
		return model.StorageFailure(fmt.Errorf("[UserService] ошибка коммита транзакции: %w", err))
	}

	return nil
}
