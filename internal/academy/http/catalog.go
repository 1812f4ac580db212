package http

import (
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleListCourses godoc
//
//	@Summary		List Courses
//	@Description	Published courses, newest first. Category and level filters are applied by clients.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	academysdk.DataEnvelope[[]academysdk.Course]	"data"
//	@Router			/api/courses [get].
func (h *CatalogHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.CatalogService.ListPublishedCourses(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[[]academysdk.Course]{
		Data: mapSlice(courses, toSDKCourse),
	})
}

// HandleGetCourse godoc
//
//	@Summary		Get Course
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string									true	"Course ID"
//	@Success		200	{object}	academysdk.DataEnvelope[academysdk.Course]	"data"
//	@Failure		404	{object}	httpx.ErrorBody								"success, error"
//	@Router			/api/courses/{id} [get].
func (h *CatalogHandler) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.CatalogService.GetPublishedCourse(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[academysdk.Course]{Data: toSDKCourse(course)})
}

// HandleListJobs godoc
//
//	@Summary		List Jobs
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	academysdk.DataEnvelope[[]academysdk.Job]	"data"
//	@Router			/api/jobs [get].
func (h *CatalogHandler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.CatalogService.ListJobs(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[[]academysdk.Job]{Data: mapSlice(jobs, toSDKJob)})
}

// HandleListEvents godoc
//
//	@Summary		List Upcoming Events
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	academysdk.DataEnvelope[[]academysdk.Event]	"data"
//	@Router			/api/events [get].
func (h *CatalogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.CatalogService.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[[]academysdk.Event]{Data: mapSlice(events, toSDKEvent)})
}

// HandleListResources godoc
//
//	@Summary		List Resources
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	academysdk.DataEnvelope[[]academysdk.Resource]	"data"
//	@Router			/api/resources [get].
func (h *CatalogHandler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	res, err := h.CatalogService.ListResources(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[[]academysdk.Resource]{Data: mapSlice(res, toSDKResource)})
}
