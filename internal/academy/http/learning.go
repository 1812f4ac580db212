package http

import (
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
)

type LearningHandler struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

// HandleCheckEnrollment godoc
//
//	@Summary		Check Enrollment
//	@Description	Reports whether the signed-in student owns the course
//	@Tags			Learning
//	@Produce		json
//	@Security		BearerAuth
//	@Param			course_id	query		string							true	"Course ID"
//	@Success		200			{object}	academysdk.EnrollmentResponse	"enrolled"
//	@Failure		400			{object}	httpx.ErrorBody					"success, error"
//	@Failure		401			{object}	httpx.ErrorBody					"success, error"
//	@Router			/api/enrollments/check [get].
func (h *LearningHandler) HandleCheckEnrollment(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "course_id is required")
		return
	}

	ok, err := h.EnrollmentService.IsEnrolled(r.Context(), userID(r), courseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.EnrollmentResponse{Enrolled: ok})
}

// HandleListModules godoc
//
//	@Summary		List Course Modules
//	@Description	Modules of a course the student is enrolled in, ordered by order_index
//	@Tags			Learning
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string										true	"Course ID"
//	@Success		200	{object}	academysdk.DataEnvelope[[]academysdk.Module]	"data"
//	@Failure		403	{object}	httpx.ErrorBody								"success, error"
//	@Failure		404	{object}	httpx.ErrorBody								"success, error"
//	@Router			/api/courses/{id}/modules [get].
func (h *LearningHandler) HandleListModules(w http.ResponseWriter, r *http.Request) {
	mods, err := h.EnrollmentService.ListModules(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.DataEnvelope[[]academysdk.Module]{Data: mapSlice(mods, toSDKModule)})
}

// HandleGetProgress godoc
//
//	@Summary		Get Progress
//	@Tags			Learning
//	@Produce		json
//	@Security		BearerAuth
//	@Param			course_id	query		string						true	"Course ID"
//	@Success		200			{object}	academysdk.ProgressResponse	"completed_modules"
//	@Failure		400			{object}	httpx.ErrorBody				"success, error"
//	@Router			/api/progress [get].
func (h *LearningHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "course_id is required")
		return
	}

	done, err := h.ProgressService.Completed(r.Context(), userID(r), courseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.ProgressResponse{CompletedModules: done})
}

// HandleMarkComplete godoc
//
//	@Summary		Mark Module Complete
//	@Description	Idempotently records a finished module
//	@Tags			Learning
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		academysdk.MarkCompleteRequest	true	"module_id"
//	@Success		200		{object}	academysdk.SuccessResponse		"success"
//	@Failure		403		{object}	httpx.ErrorBody					"success, error"
//	@Failure		404		{object}	httpx.ErrorBody					"success, error"
//	@Router			/api/progress/complete [post].
func (h *LearningHandler) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	var req academysdk.MarkCompleteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.ModuleID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "module_id is required")
		return
	}

	if err := h.ProgressService.MarkComplete(r.Context(), userID(r), req.ModuleID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, academysdk.SuccessResponse{Success: true})
}
