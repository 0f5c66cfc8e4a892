package service

import (
	"context"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
	"log"
	"strings"
)

type FileService struct {
	fileRepo  ports.FileRepository
	grantRepo ports.GrantRepository
	userRepo  ports.UserRepository
	cache     ports.CacheRepository
	storage   ports.BlobStore
	locker    ports.NamespaceLocker
	namespace string
	uploads   config.UploadsConfig
}

func NewFileService(
	fileRepo ports.FileRepository,
	grantRepo ports.GrantRepository,
	userRepo ports.UserRepository,
	cache ports.CacheRepository,
	storage ports.BlobStore,
	locker ports.NamespaceLocker,
	namespace string,
	uploads config.UploadsConfig,
) *FileService {
	return &FileService{
		fileRepo:  fileRepo,
		grantRepo: grantRepo,
		userRepo:  userRepo,
		cache:     cache,
		storage:   storage,
		locker:    locker,
		namespace: namespace,
		uploads:   uploads,
	}
}

// Upload : подбирает имя в хранилище, пишет блоб и создаёт запись о файле.
// Подбор имени и запись выполняются под блокировкой пространства имён.
func (s *FileService) Upload(ctx context.Context, actor string, input model.UploadInput) (*model.FileRecord, error) {
	unlock, err := s.locker.Lock(ctx, s.namespace)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] не удалось заблокировать пространство имён", err))
	}
	defer unlock()

	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	owner, err := s.userRepo.FindByUUID(ctx, exec, actor)
	if err != nil {
		return nil, actorFromUserErr(err)
	}

	displayName := strings.TrimSuffix(input.OriginalName, "."+input.Extension)
	if input.Extension == "" {
		displayName = input.OriginalName
	}

	storageName, err := util.ResolveStorageName(displayName, input.Extension, s.uploads.MaxNameAttempts, func(name string) (bool, error) {
		return s.storage.Exists(ctx, name)
	})
	if errors.Is(err, util.ErrStorageNameExhausted) {
		return nil, model.NewValidationError("files", "too many files with this name")
	}
	if err != nil {
		return nil, classify(err)
	}

	publicID, err := util.GenerateUniquePublicID(ctx, s.uploads.PublicIDLength, s.uploads.MaxNameAttempts,
		func(ctx context.Context, id string) (bool, error) {
			return s.fileRepo.PublicIDExists(ctx, exec, id)
		})
	if err != nil {
		return nil, model.StorageFailure(err)
	}

	if err := s.storage.Write(ctx, storageName, input.Data); err != nil {
		return nil, classify(err)
	}

	file := &model.File{
		PublicID:    publicID,
		OwnerUUID:   actor,
		Name:        displayName,
		Extension:   input.Extension,
		StoragePath: storageName,
	}
	if err := s.fileRepo.Create(ctx, exec, file); err != nil {
		s.removeOrphanBlob(storageName)
		return nil, model.StorageFailure(err)
	}

	if err := commit(); err != nil {
		s.removeOrphanBlob(storageName)
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка коммита транзакции", err))
	}

	return &model.FileRecord{
		File:     *file,
		Accesses: AssembleAccessList(owner, nil),
	}, nil
}

// removeOrphanBlob : откат записи блоба, если запись о файле не сохранилась
func (s *FileService) removeOrphanBlob(name string) {
	if err := s.storage.Delete(context.Background(), name); err != nil {
		log.Printf("[FileService] не удалось удалить осиротевший блоб %s: %v", name, err)
	}
}

// Download : владелец или соавтор получает содержимое файла под именем name.ext
func (s *FileService) Download(ctx context.Context, actor string, publicID string) (*model.FileContent, error) {
	exec, rollback, _, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	file, err := s.fileRepo.GetByPublicID(ctx, exec, publicID)
	if err != nil {
		return nil, classify(err)
	}

	isGrantee := false
	if !security.IsOwner(actor, file) {
		isGrantee, err = s.grantRepo.HasGrant(ctx, exec, file.ID, actor)
		if err != nil {
			return nil, classify(err)
		}
	}
	if !security.CanRead(actor, file, isGrantee) {
		return nil, model.ErrForbidden
	}

	data, err := s.readContent(ctx, file)
	if err != nil {
		return nil, classify(err)
	}

	return &model.FileContent{
		Filename: file.DisplayFilename(),
		Data:     data,
	}, nil
}

// readContent : содержимое из кэша по id файла, при промахе из хранилища
func (s *FileService) readContent(ctx context.Context, file *model.File) ([]byte, error) {
	data, ok, err := s.cache.GetContent(ctx, file.ID)
	if err != nil {
		log.Printf("[FileService] ошибка чтения кэша: %v", err)
	}
	if ok {
		return data, nil
	}

	data, err = s.storage.Read(ctx, file.StoragePath)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetContent(ctx, file.ID, data); err != nil {
		log.Printf("[FileService] не удалось закэшировать файл %s: %v", file.PublicID, err)
	}
	return data, nil
}

// Rename : меняет только отображаемое имя, путь в хранилище и public id не трогаются
func (s *FileService) Rename(ctx context.Context, actor string, publicID string, newName string) (*model.FileRecord, error) {
	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	file, err := s.fileRepo.LockByPublicID(ctx, exec, publicID)
	if err != nil {
		return nil, classify(err)
	}
	if !security.CanMutate(actor, file) {
		return nil, model.ErrForbidden
	}

	newName = strings.TrimSpace(newName)
	if err := util.ValidateVar("name", newName, "required,max=255"); err != nil {
		return nil, err
	}

	updated, err := s.fileRepo.UpdateName(ctx, exec, file.ID, newName)
	if err != nil {
		return nil, classify(err)
	}

	accesses, err := loadAccessList(ctx, exec, s.userRepo, s.grantRepo, updated)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка коммита транзакции", err))
	}

	return &model.FileRecord{File: *updated, Accesses: accesses}, nil
}

// Delete : сначала блоб, затем доступы и запись. Если блоб удалить не удалось, запись остаётся.
func (s *FileService) Delete(ctx context.Context, actor string, publicID string) error {
	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	file, err := s.fileRepo.LockByPublicID(ctx, exec, publicID)
	if err != nil {
		return classify(err)
	}
	if !security.CanMutate(actor, file) {
		return model.ErrForbidden
	}

	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		return classify(err)
	}

	if _, err := s.grantRepo.DeleteByFile(ctx, exec, file.ID); err != nil {
		return classify(err)
	}
	if err := s.fileRepo.Delete(ctx, exec, file.ID); err != nil {
		return classify(err)
	}

	if err := commit(); err != nil {
		return model.StorageFailure(util.LogError("[FileService] ошибка коммита транзакции", err))
	}

	if err := s.cache.DeleteContent(ctx, file.ID); err != nil {
		log.Printf("[FileService] не удалось инвалидировать кэш %s: %v", publicID, err)
	}

	return nil
}

// ListOwned : файлы пользователя, каждый со списком доступа
func (s *FileService) ListOwned(ctx context.Context, actor string) ([]model.FileRecord, error) {
	exec, rollback, _, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	owner, err := s.userRepo.FindByUUID(ctx, exec, actor)
	if err != nil {
		return nil, actorFromUserErr(err)
	}

	files, err := s.fileRepo.ListByOwner(ctx, exec, actor)
	if err != nil {
		return nil, classify(err)
	}

	records := make([]model.FileRecord, 0, len(files))
	for _, file := range files {
		grantees, err := s.grantRepo.ListGrantees(ctx, exec, file.ID)
		if err != nil {
			return nil, classify(err)
		}
		records = append(records, model.FileRecord{
			File:     file,
			Accesses: AssembleAccessList(owner, grantees),
		})
	}

	return records, nil
}

// ListShared : файлы, доступные пользователю как соавтору; собственные файлы сюда не попадают
func (s *FileService) ListShared(ctx context.Context, actor string) ([]model.File, error) {
	exec, rollback, _, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, model.StorageFailure(util.LogError("[FileService] ошибка начала транзакции", err))
	}
	defer rollback()

	files, err := s.fileRepo.ListSharedWith(ctx, exec, actor)
	if err != nil {
		return nil, classify(err)
	}

	shared := files[:0]
	for _, file := range files {
		if !security.IsOwner(actor, &file) {
			shared = append(shared, file)
		}
	}

	return shared, nil
}
