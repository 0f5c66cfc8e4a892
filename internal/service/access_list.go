package service

import (
	"context"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AssembleAccessList : владелец первым с ролью author, затем соавторы в порядке выдачи доступа
func AssembleAccessList(owner *model.User, grantees []model.User) []model.AccessEntry {
	entries := make([]model.AccessEntry, 0, len(grantees)+1)
	entries = append(entries, model.AccessEntry{
		FullName: owner.FullName(),
		Email:    owner.Email,
		Role:     model.RoleAuthor,
	})

	seen := map[string]bool{owner.UUID: true}
	for _, grantee := range grantees {
		if seen[grantee.UUID] {
			continue
		}
		seen[grantee.UUID] = true
		entries = append(entries, model.AccessEntry{
			FullName: grantee.FullName(),
			Email:    grantee.Email,
			Role:     model.RoleCoAuthor,
		})
	}

	return entries
}

// loadAccessList : читает владельца и соавторов в рамках текущей транзакции
func loadAccessList(ctx context.Context, exec sqlx.ExtContext, users ports.UserRepository, grants ports.GrantRepository, file *model.File) ([]model.AccessEntry, error) {
	owner, err := users.FindByUUID(ctx, exec, file.OwnerUUID)
	if err != nil {
		// owner_uuid ссылается на users с ON DELETE RESTRICT
		return nil, model.StorageFailure(fmt.Errorf("[AccessList] владелец файла %s не найден: %v", file.PublicID, err))
	}

	grantees, err := grants.ListGrantees(ctx, exec, file.ID)
	if err != nil {
		return nil, classify(err)
	}

	return AssembleAccessList(owner, grantees), nil
}
