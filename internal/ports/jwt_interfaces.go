package ports

import (
	"context"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/security"
)

type JWTRepositoryInterface interface {
	FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error)
	MarkRefreshTokenUsedByUUID(ctx context.Context, uuid string) error
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	RevokeUserSessions(ctx context.Context, userUUID string) (int64, error)
}

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error)
	ValidateJWT(tokenString string) (*security.Claims, error)
	ParseExpiredJWT(tokenString string) (*security.Claims, error)
}
