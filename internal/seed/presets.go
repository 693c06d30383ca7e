package seed

import (
	_ "embed"
	"fmt"
	"log"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is a named seeding recipe. Category weights control how posts are
// distributed; a zero-weight category gets no posts.
type Preset struct {
	Description string         `yaml:"description"`
	Posts       int            `yaml:"posts"`
	Featured    int            `yaml:"featured"`
	Sponsored   int            `yaml:"sponsored"`
	MaxComments int            `yaml:"max_comments"`
	Categories  map[string]int `yaml:"categories"`
}

func loadPresets() (map[string]Preset, error) {
	presets := map[string]Preset{}
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return presets, nil
}

// PresetNames lists the available preset names, sorted.
func PresetNames() []string {
	presets, err := loadPresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset seeds the database according to the named recipe.
func (s *Seeder) ApplyPreset(name string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	preset, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}

	log.Printf("Applying preset %q: %s", name, preset.Description)

	remainingFeatured := preset.Featured
	remainingSponsored := preset.Sponsored
	created := 0

	for category, weight := range preset.Categories {
		count := preset.Posts * weight / totalWeight(preset.Categories)
		for i := 0; i < count; i++ {
			opts := []PostOption{WithCategory(category), WithEngagement()}
			if remainingFeatured > 0 {
				opts = append(opts, WithFeatured())
				remainingFeatured--
			}
			if remainingSponsored > 0 {
				opts = append(opts, WithSponsor())
				remainingSponsored--
			}

			post := NewPost(opts...)
			if err := s.db.Create(post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			created++

			for j := 0; j < preset.MaxComments; j++ {
				comment := NewComment(post.ID, post.CreatedAt)
				if err := s.db.Create(comment).Error; err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
			}
		}
	}

	log.Printf("✓ Preset %q applied: %d posts", name, created)
	return nil
}

func totalWeight(weights map[string]int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 1
	}
	return total
}
