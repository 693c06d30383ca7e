// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"khabri/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with development data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll wipes posts, comments and admin accounts. Development only.
func (s *Seeder) ClearAll() error {
	// Comments reference posts, so they go first.
	for _, table := range []string{"comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// EnsureAdmin creates the default admin account if no users exist.
func (s *Seeder) EnsureAdmin(username, password string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Username: username, Password: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("✓ Admin account %q created", username)
	return nil
}

// SeedPosts creates n posts with engagement counters and a scattering of
// comments, spread across all categories.
func (s *Seeder) SeedPosts(n int) error {
	featured := 0
	comments := 0
	for i := 0; i < n; i++ {
		opts := []PostOption{WithEngagement()}
		// Roughly one in five posts is featured, one in eight sponsored.
		if rand.Intn(5) == 0 {
			opts = append(opts, WithFeatured())
			featured++
		}
		if rand.Intn(8) == 0 {
			opts = append(opts, WithSponsor())
		}

		post := NewPost(opts...)
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("create post %d: %w", i, err)
		}

		for j := 0; j < rand.Intn(6); j++ {
			comment := NewComment(post.ID, post.CreatedAt)
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment on post %d: %w", post.ID, err)
			}
			comments++
		}
	}
	log.Printf("✓ %d posts created (%d featured, %d comments)", n, featured, comments)
	return nil
}

// Seed runs the full development seeding pass.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d posts...", opts.NumPosts)
	s := NewSeeder(db)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := s.EnsureAdmin("admin", "admin12345"); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if err := s.SeedPosts(opts.NumPosts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}

	log.Println("✅ Seeding complete")
	return nil
}
