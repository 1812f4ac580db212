package http

import (
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
)

type AdminCourseHandler struct {
	CatalogService *service.CatalogService
}

func courseInput(in academysdk.CourseInput) service.CourseInput {
	return service.CourseInput{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Currency:      in.Currency,
		Thumbnail:     in.Thumbnail,
		Category:      in.Category,
		Level:         domain.Level(in.Level),
		DurationHours: in.DurationHours,
		Status:        domain.CourseStatus(in.Status),
	}
}

// HandleCreateCourse godoc
//
//	@Summary		Create Course
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		academysdk.CourseInput						true	"Course fields"
//	@Success		201		{object}	academysdk.DataEnvelope[academysdk.Course]	"data"
//	@Failure		400		{object}	httpx.ErrorBody								"success, error"
//	@Router			/api/admin/courses [post].
func (h *AdminCourseHandler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req academysdk.CourseInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.CatalogService.CreateCourse(r.Context(), courseInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, academysdk.DataEnvelope[academysdk.Course]{Data: toSDKCourse(c)})
}

// HandleUpdateCourse godoc
//
//	@Summary		Update Course
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string										true	"Course ID"
//	@Param			body	body		academysdk.CourseInput						true	"Course fields"
//	@Success		200		{object}	academysdk.DataEnvelope[academysdk.Course]	"data"
//	@Failure		400		{object}	httpx.ErrorBody								"success, error"
//	@Failure		404		{object}	httpx.ErrorBody								"success, error"
//	@Router			/api/admin/courses/{id} [put].
func (h *AdminCourseHandler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req academysdk.CourseInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.CatalogService.UpdateCourse(r.Context(), r.PathValue("id"), courseInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[academysdk.Course]{Data: toSDKCourse(c)})
}

// HandleCreateModule godoc
//
//	@Summary		Append Module
//	@Description	Adds a module at the next order index of the course
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string										true	"Course ID"
//	@Param			body	body		academysdk.ModuleInput						true	"Module fields"
//	@Success		201		{object}	academysdk.DataEnvelope[academysdk.Module]	"data"
//	@Failure		400		{object}	httpx.ErrorBody								"success, error"
//	@Failure		404		{object}	httpx.ErrorBody								"success, error"
//	@Router			/api/admin/courses/{id}/modules [post].
func (h *AdminCourseHandler) HandleCreateModule(w http.ResponseWriter, r *http.Request) {
	var req academysdk.ModuleInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.CatalogService.CreateModule(r.Context(), r.PathValue("id"), service.ModuleInput{
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, academysdk.DataEnvelope[academysdk.Module]{Data: toSDKModule(m)})
}
