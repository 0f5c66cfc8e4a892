package repository

import (
	"context"
	"database/sql"
	"errors"
	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return &config.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

var fileRowColumns = []string{"id", "public_id", "owner_uuid", "name", "extension", "storage_path", "created_at", "updated_at"}

func TestFileRepository_Create(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO files (public_id, owner_uuid, name, extension, storage_path)`)).
		WithArgs("AbCdEfGhIj", "owner-1", "report", "pdf", "report.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	file := &model.File{PublicID: "AbCdEfGhIj", OwnerUUID: "owner-1", Name: "report", Extension: "pdf", StoragePath: "report.pdf"}
	err := repo.Create(context.Background(), db.DB, file)

	require.NoError(t, err)
	assert.Equal(t, int64(7), file.ID)
	assert.Equal(t, now, file.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_GetByPublicID(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM files WHERE public_id = $1`)).
		WithArgs("AbCdEfGhIj").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(int64(1), "AbCdEfGhIj", "owner-1", "report", "pdf", "report.pdf", now, now))

	file, err := repo.GetByPublicID(context.Background(), db.DB, "AbCdEfGhIj")

	require.NoError(t, err)
	assert.Equal(t, "owner-1", file.OwnerUUID)
	assert.Equal(t, "report.pdf", file.DisplayFilename())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_GetByPublicID_NotFound(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM files WHERE public_id = $1`)).
		WithArgs("missing123").
		WillReturnError(sql.ErrNoRows)

	file, err := repo.GetByPublicID(context.Background(), db.DB, "missing123")

	assert.Nil(t, file)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFileRepository_LockByPublicID_UsesRowLock(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE public_id = $1 FOR UPDATE`)).
		WithArgs("AbCdEfGhIj").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(int64(1), "AbCdEfGhIj", "owner-1", "report", "", "report", time.Now(), time.Now()))

	file, err := repo.LockByPublicID(context.Background(), db.DB, "AbCdEfGhIj")

	require.NoError(t, err)
	assert.Equal(t, "report", file.DisplayFilename())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_ListSharedWith(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE g.user_uuid = $1 AND f.owner_uuid <> $1`)).
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(int64(1), "AbCdEfGhIj", "owner-1", "a", "txt", "a.txt", now, now).
			AddRow(int64(2), "KlMnOpQrSt", "owner-3", "b", "txt", "b.txt", now, now))

	files, err := repo.ListSharedWith(context.Background(), db.DB, "user-2")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "AbCdEfGhIj", files[0].PublicID)
	assert.Equal(t, "KlMnOpQrSt", files[1].PublicID)
}

func TestFileRepository_ListByOwner_Empty(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE owner_uuid = $1`)).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(fileRowColumns))

	files, err := repo.ListByOwner(context.Background(), db.DB, "owner-1")

	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestFileRepository_Delete(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	query := regexp.QuoteMeta(`DELETE FROM files WHERE id = $1 RETURNING public_id`) + `(?s).*` +
		regexp.QuoteMeta(`INSERT INTO retired_public_ids (public_id)`)
	mock.ExpectExec(query).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), db.DB, 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), db.DB, 2), model.ErrFileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_PublicIDExists_IncludesRetired(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM retired_public_ids WHERE public_id = $1`)).
		WithArgs("AbCdEfGhIj").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.PublicIDExists(context.Background(), db.DB, "AbCdEfGhIj")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_BeginTX(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewFileRepository(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	exec, rollback, commit, err := repo.BeginTX(context.Background())
	require.NoError(t, err)
	require.NotNil(t, exec)

	require.NoError(t, commit())
	// откат после коммита не считается ошибкой
	assert.NoError(t, rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantRepository_AddGrant_Idempotent(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGrantRepository(db)

	query := regexp.QuoteMeta(`ON CONFLICT (file_id, user_uuid) DO NOTHING`)
	mock.ExpectExec(query).WithArgs(int64(1), "user-2").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(query).WithArgs(int64(1), "user-2").WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddGrant(context.Background(), db.DB, 1, "user-2")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddGrant(context.Background(), db.DB, 1, "user-2")
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantRepository_RemoveGrant(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGrantRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`WHERE file_id = $1 AND user_uuid = $2`)).
		WithArgs(int64(1), "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.RemoveGrant(context.Background(), db.DB, 1, "user-2")

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGrantRepository_ListGrantees(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGrantRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY g.id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "first_name", "last_name", "email", "password_hash", "created_at"}).
			AddRow("user-2", "Bob", "Smith", "bob@example.com", "hash", now).
			AddRow("user-3", "Eve", "Stone", "eve@example.com", "hash", now))

	users, err := repo.ListGrantees(context.Background(), db.DB, 1)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob@example.com", users[0].Email)
	assert.Equal(t, "eve@example.com", users[1].Email)
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	user, err := repo.CreateUser(context.Background(), db.DB, &model.User{UUID: "u1", Email: "a@b.c"})

	assert.Nil(t, user)
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "email")
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "first_name", "last_name", "email", "password_hash", "created_at"}).
			AddRow("user-2", "Bob", "Smith", "bob@example.com", "hash", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), db.DB, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", user.FullName())

	_, err = repo.FindByEmail(context.Background(), db.DB, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestJWTRepository_MarkRefreshTokenUsed(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewJWTRepository(db)

	query := regexp.QuoteMeta(`UPDATE refresh_tokens SET used = TRUE WHERE uuid = $1 AND used = FALSE`)
	mock.ExpectExec(query).WithArgs("rt-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("rt-1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.MarkRefreshTokenUsedByUUID(context.Background(), "rt-1"))
	assert.ErrorIs(t, repo.MarkRefreshTokenUsedByUUID(context.Background(), "rt-1"), model.ErrUnauthenticated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJWTRepository_FindByUUID_NotFound(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewJWTRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM refresh_tokens WHERE uuid = $1`)).
		WithArgs("rt-404").
		WillReturnError(sql.ErrNoRows)

	token, err := repo.FindByUUID(context.Background(), "rt-404")

	assert.Nil(t, token)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestJWTRepository_SaveRefreshToken(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewJWTRepository(db)
	expireAt := time.Now().Add(time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens (uuid, user_uuid, token_hash, expire_at, used, user_agent, ip_address)`)).
		WithArgs("rt-1", "u1", "hash", expireAt, false, "curl/8.0", "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveRefreshToken(context.Background(), &model.RefreshToken{
		UUID:      "rt-1",
		UserUUID:  "u1",
		TokenHash: "hash",
		ExpireAt:  expireAt,
		UserAgent: "curl/8.0",
		IpAddress: "10.0.0.1",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJWTRepository_RevokeUserSessions(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewJWTRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE refresh_tokens SET used = TRUE WHERE user_uuid = $1 AND used = FALSE`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	revoked, err := repo.RevokeUserSessions(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), revoked)
}
