package service

import (
	"context"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrAuthorizationFailed : неверная пара email/пароль
var ErrAuthorizationFailed = fmt.Errorf("%w: authorization failed", model.ErrUnauthenticated)

type AuthenticationService struct {
	jwtRepoInterface    ports.JWTRepositoryInterface
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
}

func NewAuthenticationService(
	repo ports.JWTRepositoryInterface,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		repo,
		service,
		userInterface,
	}
}

func (s *AuthenticationService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	if err := util.ValidateVar("email", strings.TrimSpace(email), "required,email"); err != nil {
		return nil, err
	}
	if err := util.ValidateVar("password", password, "required"); err != nil {
		return nil, err
	}

	exec, rollback, _, err := s.userRepository.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("ошибка начала транзакции", err))
	}
	defer rollback()

	user, err := s.userRepository.FindByEmail(ctx, exec, strings.TrimSpace(email))
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, ErrAuthorizationFailed
	}
	if err != nil {
		return nil, classify(err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrAuthorizationFailed
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress

	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, model.StorageFailure(fmt.Errorf("ошибка сохранения refresh токена: %w", err))
	}

	return tokens, nil
}

// RefreshToken обновляет пару токенов
// Выполняет следующие требования к операции refresh:
//  1. Операцию refresh можно выполнить только той парой токенов, которая была выдана вместе.
//  2. Запрещает операцию обновления токенов при изменении User-Agent.
//     При этом, после неудачной попытки выполнения операции, сессия отзывается.
//  3. Смена IP адреса только логируется, операция не запрещается.
//
// Параметры:
//   - ctx: контекст выполнения (для отмены и таймаутов)
//   - userAgent: информацию о бразуере
//   - ipAddress: ip адрес устройства, с которого был выполнен вход
//   - accessToken: текущий access-токен (может быть просрочен)
//   - refreshToken: текущий refresh-токен
//
// Возвращает:
//   - model.TokensPair
//   - ошибку, если не удалось обновить токен.
func (s *AuthenticationService) RefreshToken(ctx context.Context, userAgent string, ipAddress string, accessToken string, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.ParseExpiredJWT(accessToken)
	if err != nil {
		return nil, util.LogError("не удалось провалидировать токен", err)
	}

	refreshTokenUUID := claims.RefreshTokenUUID
	userUUID := claims.UserUUID

	storedRefreshToken, err := s.jwtRepoInterface.FindByUUID(ctx, refreshTokenUUID)
	if err != nil {
		return nil, util.LogError("не удалось найти рефреш токен", err)
	}
	if storedRefreshToken.Used {
		// повторное предъявление отозванного токена: отзываем все сессии владельца
		revoked, err := s.jwtRepoInterface.RevokeUserSessions(ctx, storedRefreshToken.UserUUID)
		if err != nil {
			log.Printf("не удалось отозвать сессии пользователя %s: %v", storedRefreshToken.UserUUID, err)
		}
		log.Printf("refresh token %s уже был использован, отозвано сессий: %d", refreshTokenUUID, revoked)
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthenticated)
	}

	if !storedRefreshToken.IssuedTo(userUUID) {
		log.Printf("refresh token %s выдан другому пользователю", refreshTokenUUID)
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthenticated)
	}

	if storedRefreshToken.Expired(time.Now().UTC()) {
		log.Printf("refresh token %s просрочен", refreshTokenUUID)
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthenticated)
	}

	if storedRefreshToken.UserAgent != userAgent {
		if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
			log.Printf("не удалось пометить токен использованным: %v", err)
		}
		log.Printf("refresh token %s: попытка обновления с другого User-Agent", refreshTokenUUID)
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthenticated)
	}

	if storedRefreshToken.IpAddress != ipAddress {
		log.Printf("refresh token %s: обновление с нового ip адреса %s (был %s)", refreshTokenUUID, ipAddress, storedRefreshToken.IpAddress)
	}

	err = bcrypt.CompareHashAndPassword([]byte(storedRefreshToken.TokenHash), []byte(refreshToken))
	if err != nil {
		return nil, util.LogError("невалидный токен", fmt.Errorf("%w: %w", model.ErrUnauthenticated, err))
	}

	if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
		return nil, util.LogError("не удалось использовать токен", err)
	}

	tokensPair, newRefreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(userUUID)
	if err != nil {
		return nil, util.LogError("ошибка генерации токенов", err)
	}

	newRefreshToken.UserAgent = userAgent
	newRefreshToken.IpAddress = ipAddress
	err = s.jwtRepoInterface.SaveRefreshToken(ctx, newRefreshToken)
	if err != nil {
		return nil, util.LogError("не удалось сохранить рефреш токен", err)
	}

	return tokensPair, nil
}

// Logout отзывает текущую сессию.
// Изменяет статус поля used у refresh-токена и делает его равным true,
// после чего access-токен этой сессии перестаёт приниматься.
//
// Параметры:
//   - ctx: контекст выполнения (для отмены и таймаутов)
//   - refreshTokenUUID: UUID рефреш токена из claims
//
// Возвращает:
//   - ошибку, если не удалось изменить поле used
func (s *AuthenticationService) Logout(ctx context.Context, refreshTokenUUID string) error {
	err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID)
	if err != nil {
		return fmt.Errorf("не удалось использовать токен: %w", err)
	}
	return nil
}
