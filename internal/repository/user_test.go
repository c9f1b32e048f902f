package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

const userByIDQuery = `SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(userByIDQuery)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
				AddRow(1, "deepthroat", "dt@example.com"))

		user, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "deepthroat", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(userByIDQuery)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(context.Background(), 99)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	emailQuery := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)

	t.Run("miss returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(emailQuery).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error surfaces", func(t *testing.T) {
		mock.ExpectQuery(emailQuery).
			WithArgs("dt@example.com", 1).
			WillReturnError(errors.New("connection timeout"))

		user, err := repo.GetByEmail(context.Background(), "dt@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection refused"), false},
		{errors.New(`duplicate key value violates unique constraint "idx_users_email"`), true},
		{errors.New("ERROR: insert failed (SQLSTATE 23505)"), true},
	} {
		assert.Equal(t, tt.want, isUniqueConstraintError(tt.err))
	}
}
