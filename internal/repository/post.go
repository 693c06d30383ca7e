// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"khabri/internal/models"
	"khabri/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Zero values mean "no constraint".
type PostFilter struct {
	Category string
	Featured bool
	Query    string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	// ViewBySlug atomically increments the post's view counter and returns
	// the post. The increment happens in the store (views = views + 1), so
	// concurrent lookups never lose updates.
	ViewBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
	// IncrementCounter applies `column = column + 1` for the counter backing kind.
	IncrementCounter(ctx context.Context, id uint, kind models.CounterKind) error
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("create", "posts", time.Now())
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ViewBySlug(ctx context.Context, slug string) (*models.Post, error) {
	defer observability.ObserveQuery("view", "posts", time.Now())

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Post", slug)
	}

	return r.GetBySlug(ctx, slug)
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	defer observability.ObserveQuery("list", "posts", time.Now())

	q := r.db.WithContext(ctx).Model(&models.Post{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if filter.Query != "" {
		// LOWER on both sides keeps the substring match case-insensitive
		// across mysql, postgres and sqlite.
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var posts []*models.Post
	if err := q.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("update", "posts", time.Now())
	// Save writes all scalar columns; callers are responsible for having
	// loaded the current row first so slug and counters are preserved.
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "posts", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		// Remove the post's comments in the same transaction so no orphans
		// are left behind.
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *postRepository) IncrementCounter(ctx context.Context, id uint, kind models.CounterKind) error {
	column, ok := kind.Column()
	if !ok {
		return models.NewValidationError("Unknown interaction kind")
	}

	defer observability.ObserveQuery("increment_"+column, "posts", time.Now())

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	defer observability.ObserveQuery("dashboard", "posts", time.Now())

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var totals models.TotalStats
	err = r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(
			"COALESCE(SUM(views), 0) AS total_views, " +
				"COALESCE(SUM(likes), 0) AS total_likes, " +
				"COALESCE(SUM(shares), 0) AS total_shares, " +
				"COALESCE(SUM(clicks), 0) AS total_clicks").
		Scan(&totals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&totals.TotalComments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.DashboardStats{Posts: posts, TotalStats: totals}, nil
}
