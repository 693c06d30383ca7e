package models

import "time"

// Comment is unauthenticated reader feedback attached to a post.
// Comments are displayed newest-first; ties on created_at are broken by id
// descending so listings are deterministic.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	AuthorName string    `gorm:"size:100;not null" json:"author_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
