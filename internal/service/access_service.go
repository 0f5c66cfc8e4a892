package service

import (
	"context"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
	"log"
	"strings"
)

// AccessService : выдача и отзыв доступа соавторам; управлять доступом может только владелец
type AccessService struct {
	fileRepo  ports.FileRepository
	grantRepo ports.GrantRepository
	userRepo  ports.UserRepository
}

func NewAccessService(fileRepo ports.FileRepository, grantRepo ports.GrantRepository, userRepo ports.UserRepository) *AccessService {
	return &AccessService{
		fileRepo:  fileRepo,
		grantRepo: grantRepo,
		userRepo:  userRepo,
	}
}

// Grant : повторная выдача доступа тому же пользователю ничего не меняет
func (s *AccessService) Grant(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error) {
	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[AccessService] ошибка начала транзакции", err))
	}
	defer rollback()

	file, err := s.fileRepo.LockByPublicID(ctx, exec, publicID)
	if err != nil {
		return nil, classify(err)
	}
	if !security.CanManageGrants(actor, file) {
		return nil, model.ErrForbidden
	}

	granteeEmail = strings.TrimSpace(granteeEmail)
	if err := util.ValidateVar("email", granteeEmail, "required,email"); err != nil {
		return nil, err
	}

	grantee, err := s.userRepo.FindByEmail(ctx, exec, granteeEmail)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.NewValidationError("email", "the selected email is invalid")
	}
	if err != nil {
		return nil, classify(err)
	}

	if security.IsOwner(grantee.UUID, file) {
		return nil, model.NewValidationError("email", "the owner already has access to this file")
	}

	added, err := s.grantRepo.AddGrant(ctx, exec, file.ID, grantee.UUID)
	if err != nil {
		return nil, classify(err)
	}
	if !added {
		log.Printf("[AccessService] у %s уже есть доступ к файлу %s", grantee.UUID, file.PublicID)
	}

	accesses, err := loadAccessList(ctx, exec, s.userRepo, s.grantRepo, file)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, model.StorageFailure(util.LogError("[AccessService] ошибка коммита транзакции", err))
	}

	return accesses, nil
}

// Revoke : неизвестный email и отсутствующий доступ это разные NotFound
func (s *AccessService) Revoke(ctx context.Context, actor string, publicID string, granteeEmail string) ([]model.AccessEntry, error) {
	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[AccessService] ошибка начала транзакции", err))
	}
	defer rollback()

	file, err := s.fileRepo.LockByPublicID(ctx, exec, publicID)
	if err != nil {
		return nil, classify(err)
	}
	if !security.CanManageGrants(actor, file) {
		return nil, model.ErrForbidden
	}

	grantee, err := s.userRepo.FindByEmail(ctx, exec, strings.TrimSpace(granteeEmail))
	if err != nil {
		return nil, classify(err)
	}

	removed, err := s.grantRepo.RemoveGrant(ctx, exec, file.ID, grantee.UUID)
	if err != nil {
		return nil, classify(err)
	}
	if !removed {
		return nil, model.ErrGrantNotFound
	}

	accesses, err := loadAccessList(ctx, exec, s.userRepo, s.grantRepo, file)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, model.StorageFailure(util.LogError("[AccessService] ошибка коммита транзакции", err))
	}

	return accesses, nil
}
