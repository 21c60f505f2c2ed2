package api

import (
	"errors"
	"net/http"

	"github.com/cradlewatch/cradlewatch/internal/auth"
	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
	"github.com/cradlewatch/cradlewatch/internal/service/infant"
)

// HandleListInfants returns the infants of the authenticated guardian.
func (h *Handlers) HandleListInfants(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httputil.Unauthorized(w, "authentication required")
		return
	}

	infants, err := h.infants.List(r.Context(), claims.GuardianID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, infants)
}

// HandleCreateInfant registers an infant for the authenticated guardian.
func (h *Handlers) HandleCreateInfant(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httputil.Unauthorized(w, "authentication required")
		return
	}

	var input infant.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	created, err := h.infants.Create(r.Context(), claims.GuardianID, input)
	if err != nil {
		if errors.Is(err, infant.ErrMissingName) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.Created(w, created)
}

// HandleDeleteInfant removes one of the guardian's infants.
func (h *Handlers) HandleDeleteInfant(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httputil.Unauthorized(w, "authentication required")
		return
	}

	infantID, err := infantIDParam(r)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	if err := h.infants.Delete(r.Context(), claims.GuardianID, infantID); err != nil {
		if errors.Is(err, infant.ErrNotFound) {
			httputil.NotFound(w, "infant not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.NoContent(w)
}
