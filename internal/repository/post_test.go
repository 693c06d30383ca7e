package repository

import (
	"context"
	"regexp"
	"testing"

	"khabri/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Flood Relief Announced", Slug: "flood-relief-announced-1700000000", Content: "Content"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		slug          string
		mockBehavior  func()
		expectedTitle string
		expectedError bool
	}{
		{
			name: "Success",
			slug: "flood-relief-announced-1700000000",
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1`).
					WithArgs("flood-relief-announced-1700000000", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}).
						AddRow(1, "Flood Relief Announced", "flood-relief-announced-1700000000"))
			},
			expectedTitle: "Flood Relief Announced",
		},
		{
			name: "Not Found",
			slug: "missing",
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1`).
					WithArgs("missing", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.GetBySlug(ctx, tt.slug)
			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, "NOT_FOUND", appErr.Code)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ViewBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Increments In The Store Then Fetches", func(t *testing.T) {
		// The increment must be a relative update, never a read-modify-write.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "views"=views \+ \$1 WHERE slug = \$2`).
			WithArgs(1, "local-polls-open-1700000000").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1`).
			WithArgs("local-polls-open-1700000000", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "views"}).
				AddRow(3, "local-polls-open-1700000000", 12))

		post, err := repo.ViewBySlug(ctx, "local-polls-open-1700000000")
		assert.NoError(t, err)
		assert.Equal(t, int64(12), post.Views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Slug Is Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "views"=views \+ \$1 WHERE slug = \$2`).
			WithArgs(1, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := repo.ViewBySlug(ctx, "missing")
		var appErr *models.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_IncrementCounter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		kind         models.CounterKind
		column       string
		rowsAffected int64
		expectedCode string
	}{
		{name: "Like", kind: models.CounterLike, column: "likes", rowsAffected: 1},
		{name: "Share", kind: models.CounterShare, column: "shares", rowsAffected: 1},
		{name: "Click", kind: models.CounterClick, column: "clicks", rowsAffected: 1},
		{name: "Missing Post", kind: models.CounterLike, column: "likes", rowsAffected: 0, expectedCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "posts" SET "` + tt.column + `"=` + tt.column + ` \+ \$1 WHERE id = \$2`).
				WithArgs(1, 7).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			err := repo.IncrementCounter(ctx, 7, tt.kind)
			if tt.expectedCode != "" {
				var appErr *models.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.expectedCode, appErr.Code)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Unknown Kind Builds No Query", func(t *testing.T) {
		err := repo.IncrementCounter(ctx, 7, models.CounterKind("views"))
		var appErr *models.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Newest First", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "posts" ORDER BY created_at DESC, id DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
				AddRow(2, "Newer").
				AddRow(1, "Older"))

		posts, err := repo.List(ctx, PostFilter{})
		assert.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Newer", posts[0].Title)
	})

	t.Run("Filters Combine", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE category = \$1 AND is_featured = \$2 AND \(LOWER\(title\) LIKE \$3 OR LOWER\(content\) LIKE \$4\) ORDER BY created_at DESC, id DESC`).
			WithArgs("Sports", true, "%final%", "%final%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(5, "Cup Final"))

		posts, err := repo.List(ctx, PostFilter{Category: "Sports", Featured: true, Query: "Final"})
		assert.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Cup Final", posts[0].Title)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Removes Post And Comments Together", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id = $1`)).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 4)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Post Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, 99)
		var appErr *models.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_DashboardStats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*, \(SELECT COUNT\(\*\) FROM comments WHERE comments\.post_id = posts\.id\) AS comment_count FROM "posts" ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "views", "comment_count"}).
			AddRow(2, "Newer", 40, 3).
			AddRow(1, "Older", 10, 0))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(views\), 0\) AS total_views`).
		WillReturnRows(sqlmock.NewRows([]string{"total_views", "total_likes", "total_shares", "total_clicks"}).
			AddRow(50, 7, 2, 11))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	stats, err := repo.DashboardStats(ctx)
	assert.NoError(t, err)
	require.Len(t, stats.Posts, 2)
	assert.Equal(t, int64(3), stats.Posts[0].CommentCount)
	assert.Equal(t, int64(50), stats.TotalStats.TotalViews)
	assert.Equal(t, int64(3), stats.TotalStats.TotalComments)
	assert.NoError(t, mock.ExpectationsWereMet())
}
