// Package bootstrap wires the runtime dependencies shared by the API binaries.
package bootstrap

import (
	"fmt"
	"strings"

	"khabri/internal/cache"
	"khabri/internal/config"
	"khabri/internal/database"
	"khabri/internal/models"
	"khabri/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedSamples bool
}

// InitRuntime connects to the database and Redis and optionally provisions
// development data. The Redis client may be nil when the server is unreachable;
// callers run degraded in that case.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedSamples {
		if err := seedSamples(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed sample content: %w", err)
		}
	}

	return db, r, nil
}

func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}
	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "admin"
	}

	return seed.NewSeeder(db).EnsureAdmin(username, password)
}

// seedSamples fills an empty development store with a handful of posts so the
// reader API has content on first boot. Existing content is never touched.
func seedSamples(cfg *config.Config, db *gorm.DB) error {
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return seed.NewSeeder(db).SeedPosts(12)
}
