// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Categories is the closed set of post categories accepted by the API.
var Categories = []string{"State", "National", "Sports", "Technology", "Entertainment"}

// ValidCategory reports whether category is one of the recognized categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Post represents a published news article.
//
// Slug is assigned once at creation and never changes afterwards. The four
// counter columns (views/likes/shares/clicks) only ever increase, and are
// mutated exclusively through atomic relative updates in the repository.
type Post struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"size:300;not null" json:"title"`
	Slug           string `gorm:"size:320;uniqueIndex;not null" json:"slug"`
	Content        string `gorm:"type:text;not null" json:"content"`
	ImageURL       string `gorm:"size:512" json:"image_url"`
	Category       string `gorm:"size:32;index;not null" json:"category"`
	IsFeatured     bool   `gorm:"not null;default:false;index" json:"is_featured"`
	Tags           string `gorm:"size:512" json:"tags"`
	SEOTitle       string `gorm:"size:300" json:"seo_title"`
	SEODescription string `gorm:"size:512" json:"seo_description"`
	SponsorName    string `gorm:"size:200" json:"sponsor_name"`
	SponsorLink    string `gorm:"size:512" json:"sponsor_link"`
	SponsorImage   string `gorm:"size:512" json:"sponsor_image"`
	ExternalLink   string `gorm:"size:512" json:"external_link"`

	Views  int64 `gorm:"not null;default:0" json:"views"`
	Likes  int64 `gorm:"not null;default:0" json:"likes"`
	Shares int64 `gorm:"not null;default:0" json:"shares"`
	Clicks int64 `gorm:"not null;default:0" json:"clicks"`

	// CommentCount is not persisted; computed at query time by the dashboard query.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// CounterKind identifies one of the reader-interaction counters on a post.
// The kind is resolved to a column name through counterColumns before any
// query is constructed; user input is never interpolated into SQL.
type CounterKind string

const (
	CounterLike  CounterKind = "like"
	CounterShare CounterKind = "share"
	CounterClick CounterKind = "click"
)

var counterColumns = map[CounterKind]string{
	CounterLike:  "likes",
	CounterShare: "shares",
	CounterClick: "clicks",
}

// Column returns the posts column backing this counter kind, and whether the
// kind is one of the recognized values.
func (k CounterKind) Column() (string, bool) {
	col, ok := counterColumns[k]
	return col, ok
}
