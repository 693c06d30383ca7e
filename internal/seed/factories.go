package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"khabri/internal/models"
	"khabri/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

func init() {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
}

// PostOption mutates a factory-built post before it is saved.
type PostOption func(*models.Post)

// WithCategory pins the post to one category instead of a random one.
func WithCategory(category string) PostOption {
	return func(p *models.Post) {
		p.Category = category
	}
}

// WithFeatured marks the post as featured.
func WithFeatured() PostOption {
	return func(p *models.Post) {
		p.IsFeatured = true
	}
}

// WithSponsor attaches fake sponsor branding.
func WithSponsor() PostOption {
	return func(p *models.Post) {
		p.SponsorName = gofakeit.Company()
		p.SponsorLink = gofakeit.URL()
		p.SponsorImage = fmt.Sprintf("https://picsum.photos/seed/sponsor-%s/300/100", gofakeit.UUID())
	}
}

// WithEngagement gives the post plausible non-zero counters.
func WithEngagement() PostOption {
	return func(p *models.Post) {
		p.Views = int64(gofakeit.Number(50, 20000))
		p.Likes = int64(gofakeit.Number(0, 500))
		p.Shares = int64(gofakeit.Number(0, 200))
		p.Clicks = int64(gofakeit.Number(0, 800))
	}
}

// NewPost builds an unsaved post with fake but plausible content.
func NewPost(opts ...PostOption) *models.Post {
	createdAt := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
	title := strings.TrimSuffix(gofakeit.Sentence(gofakeit.Number(4, 9)), ".")

	post := &models.Post{
		Title:          title,
		Slug:           service.MakeSlug(title, createdAt),
		Content:        gofakeit.Paragraph(3, 6, 12, "\n\n"),
		ImageURL:       fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID()),
		Category:       models.Categories[rand.Intn(len(models.Categories))],
		Tags:           strings.Join([]string{gofakeit.BuzzWord(), gofakeit.BuzzWord(), gofakeit.BuzzWord()}, ","),
		SEOTitle:       title,
		SEODescription: gofakeit.Sentence(12),
		CreatedAt:      createdAt,
	}
	for _, opt := range opts {
		opt(post)
	}
	return post
}

// NewComment builds an unsaved comment for the given post.
func NewComment(postID uint, after time.Time) *models.Comment {
	return &models.Comment{
		PostID:     postID,
		AuthorName: gofakeit.Name(),
		Content:    gofakeit.Sentence(gofakeit.Number(5, 25)),
		CreatedAt:  gofakeit.DateRange(after, time.Now()),
	}
}
