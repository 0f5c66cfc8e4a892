package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

const issuer = "file-sharing-server"

type Claims struct {
	UserUUID         string `json:"user_uuid"`
	RefreshTokenUUID string `json:"refresh_token_id"`
	jwt.RegisteredClaims
}

// SessionStore : источник серверных сессий для проверки отзыва токена
type SessionStore interface {
	FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error)
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

func (service *JWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	refreshToken, refreshTokenStr, err := GenerateRefreshToken()
	if err != nil {
		return nil, nil, util.LogError("ошибка генерации рефреш токена", err)
	}

	refreshToken.UserUUID = userUUID
	timeDuration, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("ошибка парсинга", err)
	}
	refreshToken.ExpireAt = time.Now().UTC().Add(timeDuration)

	timeDuration, err = time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("ошибка парсинга", err)
	}
	claims := Claims{
		UserUUID:         userUUID,
		RefreshTokenUUID: refreshToken.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return nil, nil, util.LogError("ошибка подписи токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenStr,
	}, refreshToken, nil
}

func GenerateRefreshToken() (*model.RefreshToken, string, error) {
	jwtTokenBytes := make([]byte, 32)
	_, err := rand.Read(jwtTokenBytes)
	if err != nil {
		return nil, "", util.LogError("ошибка генерации", err)
	}
	refreshUUID := uuid.New().String()
	refreshTokenStr := base64.StdEncoding.EncodeToString(jwtTokenBytes)

	hashedToken, err := bcrypt.GenerateFromPassword([]byte(refreshTokenStr), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", util.LogError("ошибка хэширования", err)
	}

	// refreshTokenStr отдается клиенту
	// hashedToken сохраняется в БД
	return &model.RefreshToken{
		UUID:      refreshUUID,
		TokenHash: string(hashedToken),
		Used:      false,
	}, refreshTokenStr, nil
}

// ValidateJWT : проверяет подпись и срок действия; истёкший токен считается невалидным
func (service *JWTService) ValidateJWT(jwtTokenStr string) (*Claims, error) {
	return service.parse(jwtTokenStr)
}

// ParseExpiredJWT : проверяет только подпись, используется при обновлении пары токенов
func (service *JWTService) ParseExpiredJWT(jwtTokenStr string) (*Claims, error) {
	return service.parse(jwtTokenStr, jwt.WithoutClaimsValidation())
}

func (service *JWTService) parse(jwtTokenStr string, options ...jwt.ParserOption) (*Claims, error) {
	var claims = &Claims{}

	options = append(options, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer))
	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(service.SecretKey), nil
	}, options...)

	if err != nil {
		return nil, fmt.Errorf("%w: невалидный токен: %w", model.ErrUnauthenticated, err)
	}
	if !jwtToken.Valid {
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthenticated)
	}

	return claims, nil
}

func JWTMiddleware(jwtService *JWTService, sessions SessionStore) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, sessions, next))
	}
}

func handleAuthentication(jwtService *JWTService, sessions SessionStore, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			util.HandleError(writer, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		claims, err := jwtService.ValidateJWT(token)
		if err != nil {
			log.Printf("[JWTMiddleware] невалидный токен: %v", err)
			util.HandleError(writer, "Unauthorized", http.StatusUnauthorized)
			return
		}

		refreshToken, err := sessions.FindByUUID(request.Context(), claims.RefreshTokenUUID)
		if err != nil {
			log.Printf("[JWTMiddleware] сессия не найдена: %v", err)
			util.HandleError(writer, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !refreshToken.Usable(claims.UserUUID, time.Now().UTC()) {
			log.Printf("[JWTMiddleware] сессия %s отозвана", refreshToken.UUID)
			util.HandleError(writer, "Unauthorized", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("%w: пользователь не авторизован", model.ErrUnauthenticated)
	}
	return claims, nil
}

// WithClaims : кладёт claims в контекст (для тестов обработчиков и внутренних вызовов)
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}
