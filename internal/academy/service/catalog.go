package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/idx"
)

// DefaultCurrency applies when an admin leaves the currency empty.
const DefaultCurrency = "KES"

// CourseInput is the editable part of a course.
type CourseInput struct {
	Title         string
	Description   string
	Price         float64
	Currency      string
	Thumbnail     string
	Category      string
	Level         domain.Level
	DurationHours float64
	Status        domain.CourseStatus
}

func (in *CourseInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if in.Status == "" {
		in.Status = domain.CourseDraft
	}

	switch {
	case in.Title == "":
		return &ValidationError{Field: "title", Message: "title is required"}
	case in.Price < 0:
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	case in.DurationHours < 0:
		return &ValidationError{Field: "duration_hours", Message: "duration must not be negative"}
	case !in.Level.Valid():
		return &ValidationError{Field: "level", Message: "level must be beginner, intermediate or advanced"}
	case !in.Status.Valid():
		return &ValidationError{Field: "status", Message: "status must be draft, published or archived"}
	}
	return nil
}

// ModuleInput is the payload for appending a module.
type ModuleInput struct {
	Title           string
	Description     string
	VideoURL        string
	DurationMinutes int
}

func (in *ModuleInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.VideoURL = strings.TrimSpace(in.VideoURL)

	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if u, err := url.Parse(in.VideoURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "video_url", Message: "video_url must be an absolute URL"}
	}
	if in.DurationMinutes < 0 {
		return &ValidationError{Field: "duration_minutes", Message: "duration must not be negative"}
	}
	return nil
}

type CatalogService struct {
	Store store.Store

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ListPublishedCourses returns the public catalog, newest first.
func (s *CatalogService) ListPublishedCourses(ctx context.Context) ([]domain.Course, error) {
	return s.Store.Courses().ListCourses(ctx, domain.CoursePublished)
}

// GetPublishedCourse hides drafts and archived courses behind ErrNotFound.
func (s *CatalogService) GetPublishedCourse(ctx context.Context, id string) (domain.Course, error) {
	c, err := s.Store.Courses().GetCourse(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && c.Status != domain.CoursePublished) {
		return domain.Course{}, ErrNotFound
	}
	return c, err
}

func (s *CatalogService) CreateCourse(ctx context.Context, in CourseInput) (domain.Course, error) {
	if err := in.normalize(); err != nil {
		return domain.Course{}, err
	}

	now := s.now()
	c := courseFromInput(idx.New().String(), in)
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.Store.Courses().CreateCourse(ctx, c); err != nil {
		return domain.Course{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id string, in CourseInput) (domain.Course, error) {
	if err := in.normalize(); err != nil {
		return domain.Course{}, err
	}

	var out domain.Course
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Courses().GetCourse(ctx, id)
		if err != nil {
			return err
		}
		out = courseFromInput(id, in)
		out.CreatedAt = existing.CreatedAt
		out.UpdatedAt = s.now()
		return tx.Courses().UpdateCourse(ctx, out)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Course{}, ErrNotFound
	}
	return out, err
}

// CreateModule appends a module at the next order index of the course.
func (s *CatalogService) CreateModule(ctx context.Context, courseID string, in ModuleInput) (domain.Module, error) {
	if err := in.normalize(); err != nil {
		return domain.Module{}, err
	}

	var m domain.Module
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Courses().GetCourse(ctx, courseID); err != nil {
			return err
		}
		next, err := tx.Modules().CountModules(ctx, courseID)
		if err != nil {
			return err
		}
		m = domain.Module{
			ID:              idx.New().String(),
			CourseID:        courseID,
			Title:           in.Title,
			Description:     in.Description,
			VideoURL:        in.VideoURL,
			OrderIndex:      next,
			DurationMinutes: in.DurationMinutes,
			CreatedAt:       s.now(),
		}
		return tx.Modules().CreateModule(ctx, m)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Module{}, ErrNotFound
	}
	return m, err
}

func (s *CatalogService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.Store.Catalog().ListJobs(ctx)
}

// ListEvents returns events that have not ended yet.
func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.Store.Catalog().ListUpcomingEvents(ctx, s.now())
}

func (s *CatalogService) ListResources(ctx context.Context) ([]domain.Resource, error) {
	return s.Store.Catalog().ListResources(ctx)
}

func courseFromInput(id string, in CourseInput) domain.Course {
	return domain.Course{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Currency:      in.Currency,
		Thumbnail:     in.Thumbnail,
		Category:      in.Category,
		Level:         in.Level,
		DurationHours: in.DurationHours,
		Status:        in.Status,
	}
}
