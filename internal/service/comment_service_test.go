package service

import (
	"context"
	"strings"
	"testing"

	"khabri/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims And Stores", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockPosts := new(MockPostRepository)
		svc := NewCommentService(mockComments, mockPosts)

		mockPosts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1}, nil)
		mockComments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.AuthorName == "Ravi" && c.Content == "Great coverage"
		})).Return(nil)

		comment, err := svc.CreateComment(ctx, 1, "  Ravi  ", "  Great coverage  ")
		require.NoError(t, err)
		assert.Equal(t, "Ravi", comment.AuthorName)
		mockComments.AssertExpectations(t)
	})

	t.Run("Validation Failures", func(t *testing.T) {
		tests := []struct {
			name       string
			authorName string
			content    string
		}{
			{name: "Blank Author", authorName: "   ", content: "body"},
			{name: "Blank Content", authorName: "Ravi", content: "   "},
			{name: "Author Too Long", authorName: strings.Repeat("a", 101), content: "body"},
			{name: "Content Too Long", authorName: "Ravi", content: strings.Repeat("a", 5001)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockComments := new(MockCommentRepository)
				mockPosts := new(MockPostRepository)
				svc := NewCommentService(mockComments, mockPosts)

				_, err := svc.CreateComment(ctx, 1, tt.authorName, tt.content)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
				mockComments.AssertNotCalled(t, "Create")
			})
		}
	})

	t.Run("Unknown Post Rejects The Write", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockPosts := new(MockPostRepository)
		svc := NewCommentService(mockComments, mockPosts)

		mockPosts.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Post", uint(99)))

		_, err := svc.CreateComment(ctx, 99, "Ravi", "body")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		mockComments.AssertNotCalled(t, "Create")
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	svc := NewCommentService(mockComments, mockPosts)

	mockComments.On("ListByPost", mock.Anything, uint(42)).Return([]*models.Comment{}, nil)

	comments, err := svc.ListComments(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, comments)
	// Listing never checks post existence; unknown ids just come back empty.
	mockPosts.AssertNotCalled(t, "GetByID")
}
