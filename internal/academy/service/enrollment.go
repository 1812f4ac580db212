package service

import (
	"context"
	"errors"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
)

type EnrollmentService struct {
	Store store.Store
}

// IsEnrolled reports whether the student owns the course. Unknown courses
// are simply not enrolled.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	return s.Store.Enrollments().IsEnrolled(ctx, studentID, courseID)
}

// ListModules returns the ordered modules of a course the student owns.
func (s *EnrollmentService) ListModules(ctx context.Context, studentID, courseID string) ([]domain.Module, error) {
	if _, err := s.Store.Courses().GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnrolled
	}

	return s.Store.Modules().ListModules(ctx, courseID)
}
