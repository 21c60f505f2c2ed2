package api

import (
	"errors"
	"net/http"

	"github.com/cradlewatch/cradlewatch/internal/auth"
	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
)

// HandleRegister creates a guardian account.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input auth.RegisterInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	guardian, err := h.authSvc.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			httputil.BadRequest(w, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			httputil.Conflict(w, "email already registered")
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.Created(w, guardian)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a bearer token.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	token, guardian, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.Unauthorized(w, "invalid email or password")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"token":    token,
		"guardian": guardian,
	})
}
