package academysdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListCourses returns published courses. Category and level filters are
// applied client-side.
func (c *SDKClient) ListCourses(ctx context.Context, filter CourseFilter) ([]Course, error) {
	courses, err := getData[[]Course](ctx, c, "/api/courses")
	if err != nil {
		return nil, err
	}

	out := courses[:0]
	for _, course := range courses {
		if filter.Category != "" && !strings.EqualFold(course.Category, filter.Category) {
			continue
		}
		if filter.Level != "" && course.Level != filter.Level {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

// GetCourse returns a single published course.
func (c *SDKClient) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	course, err := getData[Course](ctx, c, "/api/courses/"+url.PathEscape(courseID))
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListJobs returns the job board.
func (c *SDKClient) ListJobs(ctx context.Context) ([]Job, error) {
	return getData[[]Job](ctx, c, "/api/jobs")
}

// ListEvents returns upcoming events.
func (c *SDKClient) ListEvents(ctx context.Context) ([]Event, error) {
	return getData[[]Event](ctx, c, "/api/events")
}

// ListResources returns the resource library.
func (c *SDKClient) ListResources(ctx context.Context) ([]Resource, error) {
	return getData[[]Resource](ctx, c, "/api/resources")
}

func getData[T any](ctx context.Context, c *SDKClient, path string) (T, error) {
	var zero T

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return zero, err
	}

	var env DataEnvelope[T]
	if err := decodeJSON(resp, &env, "GET "+path); err != nil {
		return zero, err
	}
	return env.Data, nil
}
