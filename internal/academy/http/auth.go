package http

import (
	"errors"
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
)

type AdminAuthHandler struct {
	AdminService *service.AdminService
}

// HandleLogin godoc
//
//	@Summary		Admin Login
//	@Description	Exchange admin email and password (plus a TOTP code when enabled) for an admin bearer token
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		academysdk.AdminLoginRequest						true	"email, password, otp_code"
//	@Success		200		{object}	academysdk.AuthResponse[academysdk.AdminUser]	"success, token, user"
//	@Failure		400		{object}	httpx.ErrorBody										"success, error"
//	@Failure		401		{object}	httpx.ErrorBody										"success, error"
//	@Failure		429		{object}	httpx.ErrorBody										"success, error"
//	@Router			/api/admin/login [post].
func (h *AdminAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req academysdk.AdminLoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, admin, err := h.AdminService.Login(r.Context(), req.Email, req.Password, req.OTPCode)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, service.ErrOTPRequired):
		httpx.WriteError(w, http.StatusUnauthorized, "A one-time code is required")
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.AuthResponse[academysdk.AdminUser]{
		Success: true,
		Token:   token,
		User:    toSDKAdmin(admin),
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Admin Token
//	@Description	Confirms the bearer token belongs to an existing admin
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	academysdk.AuthResponse[academysdk.AdminUser]	"success, user"
//	@Failure		401	{object}	httpx.ErrorBody									"success, error"
//	@Router			/api/admin/verify [get].
func (h *AdminAuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	admin, err := h.AdminService.GetAdmin(r.Context(), userID(r))
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteError(w, http.StatusUnauthorized, "Admin no longer exists")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.AuthResponse[academysdk.AdminUser]{
		Success: true,
		User:    toSDKAdmin(admin),
	})
}

type StudentAuthHandler struct {
	StudentService *service.StudentService
}

// HandleExchange godoc
//
//	@Summary		Student Sign-In
//	@Description	Exchange a Google ID token for a student bearer token. The student is created on first sign-in.
//	@Tags			Students
//	@Accept			json
//	@Produce		json
//	@Param			body	body		academysdk.IdentityExchangeRequest					true	"id_token"
//	@Success		200		{object}	academysdk.AuthResponse[academysdk.StudentUser]	"success, token, user"
//	@Failure		400		{object}	httpx.ErrorBody										"success, message"
//	@Failure		401		{object}	httpx.ErrorBody										"success, message"
//	@Router			/api/auth/google [post].
func (h *StudentAuthHandler) HandleExchange(w http.ResponseWriter, r *http.Request) {
	var req academysdk.IdentityExchangeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.IDToken == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorBody{Message: "id_token is required"})
		return
	}

	token, student, err := h.StudentService.Exchange(r.Context(), req.IDToken)
	if errors.Is(err, service.ErrInvalidIdentity) {
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorBody{Message: "Google sign-in failed"})
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.AuthResponse[academysdk.StudentUser]{
		Success: true,
		Token:   token,
		User:    toSDKStudent(student),
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Student Token
//	@Description	Confirms the bearer token belongs to an existing student
//	@Tags			Students
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	academysdk.AuthResponse[academysdk.StudentUser]	"success, user"
//	@Failure		401	{object}	httpx.ErrorBody									"success, error"
//	@Router			/api/auth/verify [get].
func (h *StudentAuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	student, err := h.StudentService.GetStudent(r.Context(), userID(r))
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteError(w, http.StatusUnauthorized, "Student no longer exists")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.AuthResponse[academysdk.StudentUser]{
		Success: true,
		User:    toSDKStudent(student),
	})
}
