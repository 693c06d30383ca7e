package service

import (
	"context"
	"strings"

	"khabri/internal/models"
	"khabri/internal/repository"
)

const (
	maxAuthorNameLen = 100
	maxCommentLen    = 5000
)

// CommentService validates and stores unauthenticated reader comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment appends a comment to an existing post. Both author name and
// content must be non-empty after trimming.
func (s *CommentService) CreateComment(ctx context.Context, postID uint, authorName, content string) (*models.Comment, error) {
	authorName = strings.TrimSpace(authorName)
	content = strings.TrimSpace(content)

	if authorName == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	if len(authorName) > maxAuthorNameLen {
		return nil, models.NewValidationError("Author name too long (max 100 characters)")
	}
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	// Creation targets an existing post; listing tolerates unknown ids but
	// writes do not.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     postID,
		AuthorName: authorName,
		Content:    content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListComments returns a post's comments newest-first; unknown posts yield an
// empty slice.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
