package app

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/prestige-strategies/academy/pkg/academysdk"
)

// Seed is a catalog file an admin can load with `portal admin seed`.
//
//	courses:
//	  - title: Recruitment Fundamentals
//	    price: 2500
//	    currency: KES
//	    level: beginner
//	    status: published
//	    modules:
//	      - title: Sourcing candidates
//	        video_url: https://videos.example.com/sourcing.mp4
//	        duration_minutes: 12
type Seed struct {
	Courses []SeedCourse `yaml:"courses"`
}

// SeedCourse is one course and its modules in playback order.
type SeedCourse struct {
	Title         string       `yaml:"title"`
	Description   string       `yaml:"description"`
	Price         float64      `yaml:"price"`
	Currency      string       `yaml:"currency"`
	Thumbnail     string       `yaml:"thumbnail"`
	Category      string       `yaml:"category"`
	Level         string       `yaml:"level"`
	DurationHours float64      `yaml:"duration_hours"`
	Status        string       `yaml:"status"`
	Modules       []SeedModule `yaml:"modules"`
}

// SeedModule is one module of a SeedCourse.
type SeedModule struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	VideoURL        string `yaml:"video_url"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

// ParseSeed decodes a seed file. Unknown keys are rejected.
func ParseSeed(r io.Reader) (Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	for i, c := range s.Courses {
		if c.Title == "" {
			return Seed{}, fmt.Errorf("parse seed: course %d has no title", i+1)
		}
	}
	return s, nil
}

// ApplySeed creates every course and module in s through the admin API.
func (a *App) ApplySeed(ctx context.Context, s Seed) error {
	admin := a.AdminSession()
	for _, c := range s.Courses {
		course, err := admin.CreateCourse(ctx, academysdk.CourseInput{
			Title:         c.Title,
			Description:   c.Description,
			Price:         c.Price,
			Currency:      c.Currency,
			Thumbnail:     c.Thumbnail,
			Category:      c.Category,
			Level:         academysdk.Level(c.Level),
			DurationHours: c.DurationHours,
			Status:        academysdk.CourseStatus(c.Status),
		})
		if err != nil {
			return fmt.Errorf("create course %q: %w", c.Title, err)
		}

		for _, m := range c.Modules {
			if _, err := admin.CreateModule(ctx, course.ID, academysdk.ModuleInput{
				Title:           m.Title,
				Description:     m.Description,
				VideoURL:        m.VideoURL,
				DurationMinutes: m.DurationMinutes,
			}); err != nil {
				return fmt.Errorf("create module %q of %q: %w", m.Title, c.Title, err)
			}
		}
		a.printf("created %s %s (%d modules)\n", course.ID, course.Title, len(c.Modules))
	}
	return nil
}
