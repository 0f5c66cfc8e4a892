package service_test

import (
	"context"
	"errors"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// memStore : реестр файлов, таблица прав и пользователи в памяти.
// Реализует ports.FileRepository, ports.GrantRepository и ports.UserRepository.
type memStore struct {
	mu        sync.Mutex
	users     map[string]model.User
	files     map[int64]model.File
	grants    []model.AccessGrant
	retired   map[string]bool
	nextID    int64
	failWrite error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]model.User{},
		files:   map[int64]model.File{},
		retired: map[string]bool{},
	}
}

func (m *memStore) addUser(uuid, first, last, email string) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := model.User{UUID: uuid, FirstName: first, LastName: last, Email: email, CreatedAt: time.Now()}
	m.users[uuid] = u
	return u
}

func (m *memStore) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	noop := func() error { return nil }
	return nil, noop, noop, nil
}

// ===== FileRepository =====

func (m *memStore) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	if _, ok := m.users[file.OwnerUUID]; !ok {
		return errors.New("foreign key violation: owner")
	}
	for _, f := range m.files {
		if f.PublicID == file.PublicID || f.StoragePath == file.StoragePath {
			return errors.New("unique violation")
		}
	}
	m.nextID++
	file.ID = m.nextID
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	m.files[file.ID] = *file
	return nil
}

func (m *memStore) GetByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.files {
		if f.PublicID == publicID {
			file := f
			return &file, nil
		}
	}
	return nil, model.ErrFileNotFound
}

func (m *memStore) LockByPublicID(ctx context.Context, exec sqlx.ExtContext, publicID string) (*model.File, error) {
	return m.GetByPublicID(ctx, exec, publicID)
}

func (m *memStore) PublicIDExists(ctx context.Context, exec sqlx.ExtContext, publicID string) (bool, error) {
	if _, err := m.GetByPublicID(ctx, exec, publicID); err == nil {
		return true, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retired[publicID], nil
}

func (m *memStore) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := []model.File{}
	for _, f := range m.files {
		if f.OwnerUUID == ownerUUID {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func (m *memStore) ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := []model.File{}
	for _, g := range m.grants {
		if g.UserUUID == userUUID {
			files = append(files, m.files[g.FileID])
		}
	}
	return files, nil
}

func (m *memStore) UpdateName(ctx context.Context, exec sqlx.ExtContext, fileID int64, name string) (*model.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[fileID]
	if !ok {
		return nil, model.ErrFileNotFound
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	m.files[fileID] = f
	return &f, nil
}

func (m *memStore) Delete(ctx context.Context, exec sqlx.ExtContext, fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[fileID]; !ok {
		return model.ErrFileNotFound
	}
	for _, g := range m.grants {
		if g.FileID == fileID {
			return errors.New("foreign key violation: grants")
		}
	}
	m.retired[m.files[fileID].PublicID] = true
	delete(m.files, fileID)
	return nil
}

// ===== GrantRepository =====

func (m *memStore) AddGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.grants {
		if g.FileID == fileID && g.UserUUID == userUUID {
			return false, nil
		}
	}
	m.nextID++
	m.grants = append(m.grants, model.AccessGrant{ID: m.nextID, FileID: fileID, UserUUID: userUUID, CreatedAt: time.Now()})
	return true, nil
}

func (m *memStore) RemoveGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, g := range m.grants {
		if g.FileID == fileID && g.UserUUID == userUUID {
			m.grants = append(m.grants[:i], m.grants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) HasGrant(ctx context.Context, exec sqlx.ExtContext, fileID int64, userUUID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.grants {
		if g.FileID == fileID && g.UserUUID == userUUID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListGrantees(ctx context.Context, exec sqlx.ExtContext, fileID int64) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []model.User{}
	for _, g := range m.grants {
		if g.FileID == fileID {
			users = append(users, m.users[g.UserUUID])
		}
	}
	return users, nil
}

func (m *memStore) DeleteByFile(ctx context.Context, exec sqlx.ExtContext, fileID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.grants[:0]
	var removed int64
	for _, g := range m.grants {
		if g.FileID == fileID {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	m.grants = kept
	return removed, nil
}

func (m *memStore) grantCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grants)
}

// ===== UserRepository =====

func (m *memStore) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, model.NewValidationError("email", "has already been taken")
		}
	}
	created := *user
	created.CreatedAt = time.Now()
	m.users[user.UUID] = created
	return &created, nil
}

func (m *memStore) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uuid]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (m *memStore) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *memStore) EmailExists(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, exec, email)
	return err == nil, nil
}

func (m *memStore) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[uuid]; !ok {
		return model.ErrUserNotFound
	}
	for _, f := range m.files {
		if f.OwnerUUID == uuid {
			return errors.New("foreign key violation: files")
		}
	}
	kept := m.grants[:0]
	for _, g := range m.grants {
		if g.UserUUID != uuid {
			kept = append(kept, g)
		}
	}
	m.grants = kept
	delete(m.users, uuid)
	return nil
}

// ===== кэш и блокировка =====

type memCache struct {
	mu      sync.Mutex
	content map[int64][]byte
}

func newMemCache() *memCache {
	return &memCache{content: map[int64][]byte{}}
}

func (c *memCache) SetContent(ctx context.Context, fileID int64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content[fileID] = append([]byte(nil), data...)
	return nil
}

func (c *memCache) GetContent(ctx context.Context, fileID int64) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.content[fileID]
	return data, ok, nil
}

func (c *memCache) DeleteContent(ctx context.Context, fileID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.content, fileID)
	return nil
}

func (c *memCache) has(fileID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.content[fileID]
	return ok
}

type memLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired int
	err      error
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]bool{}}
}

func (l *memLocker) Lock(ctx context.Context, namespace string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	if l.held[namespace] {
		return nil, fmt.Errorf("namespace %s already locked", namespace)
	}
	l.held[namespace] = true
	l.acquired++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, namespace)
	}, nil
}

// failingDeleteStore : блоб-хранилище, в котором удаление всегда завершается ошибкой
type failingDeleteStore struct {
	ports.BlobStore
}

func (f failingDeleteStore) Delete(ctx context.Context, name string) error {
	return model.StorageFailure(errors.New("disk is read-only"))
}

var (
	_ ports.FileRepository  = (*memStore)(nil)
	_ ports.GrantRepository = (*memStore)(nil)
	_ ports.UserRepository  = (*memStore)(nil)
	_ ports.CacheRepository = (*memCache)(nil)
)
