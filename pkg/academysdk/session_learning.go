package academysdk

import (
	"context"
	"net/http"
	"net/url"
)

// CheckEnrollment asks whether the signed-in student owns courseID.
func (s *Session) CheckEnrollment(ctx context.Context, courseID string) (bool, error) {
	path := "/api/enrollments/check?course_id=" + url.QueryEscape(courseID)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return false, err
	}

	var out EnrollmentResponse
	if err := decodeJSON(resp, &out, "GET /api/enrollments/check"); err != nil {
		return false, err
	}
	return out.Enrolled, nil
}

// ListModules returns the modules of a course the student is enrolled in,
// in the order the backend gives them.
func (s *Session) ListModules(ctx context.Context, courseID string) ([]Module, error) {
	path := "/api/courses/" + url.PathEscape(courseID) + "/modules"
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var env DataEnvelope[[]Module]
	if err := decodeJSON(resp, &env, "GET "+path); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetProgress returns the ids of modules the student completed in courseID.
func (s *Session) GetProgress(ctx context.Context, courseID string) ([]string, error) {
	path := "/api/progress?course_id=" + url.QueryEscape(courseID)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out ProgressResponse
	if err := decodeJSON(resp, &out, "GET /api/progress"); err != nil {
		return nil, err
	}
	return out.CompletedModules, nil
}

// MarkModuleComplete records completion of one module.
func (s *Session) MarkModuleComplete(ctx context.Context, moduleID string) error {
	body, err := jsonBody(MarkCompleteRequest{ModuleID: moduleID})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/progress/complete", body, nil)
	if err != nil {
		return err
	}

	var out SuccessResponse
	if err := decodeJSON(resp, &out, "POST /api/progress/complete"); err != nil {
		return err
	}
	return successOrServerError(out, http.StatusOK)
}

func successOrServerError(out SuccessResponse, status int) error {
	if out.Success {
		return nil
	}
	msg := out.Error
	if msg == "" {
		msg = out.Message
	}
	if msg == "" {
		return &NetworkError{Op: "decode response", StatusCode: status}
	}
	return &ServerError{StatusCode: status, Message: msg}
}
