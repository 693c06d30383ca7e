// Package service implements the business rules between handlers and repositories.
package service

import (
	"context"
	"strings"
	"time"

	"khabri/internal/models"
	"khabri/internal/observability"
	"khabri/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// PostService owns post validation, slug assignment and counter semantics.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// CreatePostInput carries all writable post fields. Image URLs are resolved
// by the caller (the upload collaborator returns them); absent optional
// fields stay empty strings.
type CreatePostInput struct {
	Title          string
	Content        string
	Category       string
	IsFeatured     bool
	Tags           string
	SEOTitle       string
	SEODescription string
	SponsorName    string
	SponsorLink    string
	ExternalLink   string
	ImageURL       string
	SponsorImage   string
}

// UpdatePostInput overwrites every scalar field unconditionally. The image
// fields are the exception: an empty string means "no new upload, keep the
// stored URL". Slug and counters are never touched by updates.
type UpdatePostInput struct {
	PostID         uint
	Title          string
	Content        string
	Category       string
	IsFeatured     bool
	Tags           string
	SEOTitle       string
	SEODescription string
	SponsorName    string
	SponsorLink    string
	ExternalLink   string
	ImageURL       string
	SponsorImage   string
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

func (s *PostService) validateFields(title, content, category string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	if category != "" && !models.ValidCategory(category) {
		return models.NewValidationError("Unknown category")
	}
	return nil
}

// CreatePost validates the input, synthesizes the slug and persists the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := s.validateFields(in.Title, in.Content, in.Category); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		Title:          in.Title,
		Slug:           MakeSlug(in.Title, now),
		Content:        in.Content,
		Category:       in.Category,
		IsFeatured:     in.IsFeatured,
		Tags:           in.Tags,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
		SponsorName:    in.SponsorName,
		SponsorLink:    in.SponsorLink,
		SponsorImage:   in.SponsorImage,
		ExternalLink:   in.ExternalLink,
		ImageURL:       in.ImageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// UpdatePost loads the post and overwrites all scalar fields. Images are only
// replaced when a new URL is supplied; the slug is never regenerated.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := s.validateFields(in.Title, in.Content, in.Category); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Category = in.Category
	post.IsFeatured = in.IsFeatured
	post.Tags = in.Tags
	post.SEOTitle = in.SEOTitle
	post.SEODescription = in.SEODescription
	post.SponsorName = in.SponsorName
	post.SponsorLink = in.SponsorLink
	post.ExternalLink = in.ExternalLink
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.SponsorImage != "" {
		post.SponsorImage = in.SponsorImage
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes the post and its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// ListPosts returns the filtered listing, newest first.
func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	return s.postRepo.List(ctx, filter)
}

// ViewPost resolves a post by slug and counts the lookup as a view.
func (s *PostService) ViewPost(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.postRepo.ViewBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	observability.PostViews.Inc()
	return post, nil
}

// RecordInteraction increments the like/share/click counter named by kind.
// An unknown kind is a validation error; an unknown post id is not found.
func (s *PostService) RecordInteraction(ctx context.Context, id uint, kind string) error {
	k := models.CounterKind(kind)
	if _, ok := k.Column(); !ok {
		return models.NewValidationError("Interaction kind must be one of like, share, click")
	}
	if err := s.postRepo.IncrementCounter(ctx, id, k); err != nil {
		return err
	}
	observability.InteractionsRecorded.WithLabelValues(kind).Inc()
	return nil
}

// Dashboard returns the admin snapshot: posts with comment counts and totals.
func (s *PostService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.postRepo.DashboardStats(ctx)
}
