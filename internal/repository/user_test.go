package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
			WithArgs("editor", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).
				AddRow(1, "editor", "$2a$10$hash"))

		user, err := repo.GetByUsername(ctx, "editor")
		assert.NoError(t, err)
		assert.Equal(t, "editor", user.Username)
	})

	t.Run("Missing User Is Nil Not Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
