package academysdk

import (
	"context"
	"net/http"
	"net/url"
)

// Admin catalog authoring. These back the seeding tool and end-to-end tests.

// CreateCourse creates a course.
func (s *Session) CreateCourse(ctx context.Context, in CourseInput) (*Course, error) {
	return sendData[Course](ctx, s, http.MethodPost, "/api/admin/courses", in)
}

// UpdateCourse replaces the editable fields of a course.
func (s *Session) UpdateCourse(ctx context.Context, courseID string, in CourseInput) (*Course, error) {
	return sendData[Course](ctx, s, http.MethodPut, "/api/admin/courses/"+url.PathEscape(courseID), in)
}

// CreateModule appends a module; the backend assigns the next order index.
func (s *Session) CreateModule(ctx context.Context, courseID string, in ModuleInput) (*Module, error) {
	return sendData[Module](ctx, s, http.MethodPost, "/api/admin/courses/"+url.PathEscape(courseID)+"/modules", in)
}

func sendData[T any](ctx context.Context, s *Session, method, path string, payload any) (*T, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, method, path, body, nil)
	if err != nil {
		return nil, err
	}

	var env DataEnvelope[T]
	if err := decodeJSON(resp, &env, method+" "+path); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
