package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

type ProgressService struct {
	Store store.Store
}

// Completed lists the module ids the student finished in a course.
func (s *ProgressService) Completed(ctx context.Context, studentID, courseID string) ([]string, error) {
	return s.Store.Progress().ListCompleted(ctx, studentID, courseID)
}

// MarkComplete records a module as finished. Marking it again is a no-op.
func (s *ProgressService) MarkComplete(ctx context.Context, studentID, moduleID string) error {
	m, err := s.Store.Modules().GetModule(ctx, moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	ok, err := s.Store.Enrollments().IsEnrolled(ctx, studentID, m.CourseID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEnrolled
	}

	if err := s.Store.Progress().MarkComplete(ctx, domain.ModuleCompletion{
		StudentID:   studentID,
		ModuleID:    m.ID,
		CourseID:    m.CourseID,
		CompletedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	slogx.FromContext(ctx).Debug("module completed",
		slog.String("student_id", studentID),
		slog.String("module_id", moduleID),
	)
	return nil
}
