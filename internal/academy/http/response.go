package http

import (
	"errors"
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// writeServiceError maps service errors to the {success:false, error} body.
// Anything unexpected is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrNotEnrolled):
		httpx.WriteError(w, http.StatusForbidden, "You are not enrolled in this course")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		httpx.WriteError(w, http.StatusConflict, "You are already enrolled in this course")
	case errors.Is(err, service.ErrAmountMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "Payment amount does not match the course price")
	case errors.Is(err, service.ErrIdempotencyReuse):
		httpx.WriteError(w, http.StatusConflict, "Idempotency key was already used for another course")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func userID(r *http.Request) string {
	id, _ := httpx.UserIDFromContext(r.Context())
	return id
}

func toSDKAdmin(a domain.Admin) *academysdk.AdminUser {
	return &academysdk.AdminUser{ID: a.ID, Email: a.Email}
}

func toSDKStudent(s domain.Student) *academysdk.StudentUser {
	return &academysdk.StudentUser{
		ID:       s.ID,
		Email:    s.Email,
		Name:     s.Name,
		Picture:  s.Picture,
		GoogleID: s.GoogleID,
	}
}

func toSDKCourse(c domain.Course) academysdk.Course {
	return academysdk.Course{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Price:         c.Price,
		Currency:      c.Currency,
		Thumbnail:     c.Thumbnail,
		Category:      c.Category,
		Level:         academysdk.Level(c.Level),
		DurationHours: c.DurationHours,
		Status:        academysdk.CourseStatus(c.Status),
	}
}

func toSDKModule(m domain.Module) academysdk.Module {
	return academysdk.Module{
		ID:              m.ID,
		CourseID:        m.CourseID,
		Title:           m.Title,
		Description:     m.Description,
		VideoURL:        m.VideoURL,
		OrderIndex:      m.OrderIndex,
		DurationMinutes: m.DurationMinutes,
	}
}

func toSDKJob(j domain.Job) academysdk.Job {
	out := academysdk.Job{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        j.Type,
		Description: j.Description,
		PostedAt:    j.PostedAt,
	}
	if j.Deadline != nil {
		out.Deadline = *j.Deadline
	}
	return out
}

func toSDKEvent(e domain.Event) academysdk.Event {
	out := academysdk.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
	}
	if e.EndsAt != nil {
		out.EndsAt = *e.EndsAt
	}
	return out
}

func toSDKResource(r domain.Resource) academysdk.Resource {
	return academysdk.Resource{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		URL:         r.URL,
	}
}

// mapSlice converts a slice and never returns nil, so lists encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
