package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
	"github.com/cradlewatch/cradlewatch/internal/service/action"
)

// HandleActionDashboard returns recent cry events with their
// notification and recorded actions, newest event first.
func (h *Handlers) HandleActionDashboard(w http.ResponseWriter, r *http.Request) {
	infantID, err := strconv.ParseInt(r.URL.Query().Get("infantId"), 10, 64)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	events, err := h.actions.Dashboard(r.Context(), infantID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, events)
}

// HandleRecordAction records what the guardian did for a cry event.
func (h *Handlers) HandleRecordAction(w http.ResponseWriter, r *http.Request) {
	var input action.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	log, err := h.actions.Record(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, action.ErrMissingEvent), errors.Is(err, action.ErrMissingDetail):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.Created(w, log)
}

// HandleUpdateAction updates the detail and/or result of an action.
func (h *Handlers) HandleUpdateAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := strconv.ParseInt(chi.URLParam(r, "actionId"), 10, 64)
	if err != nil {
		httputil.BadRequest(w, "invalid action ID")
		return
	}

	var fields action.UpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	if err := h.actions.Update(r.Context(), actionID, fields); err != nil {
		switch {
		case errors.Is(err, action.ErrNoFields):
			httputil.BadRequest(w, err.Error())
		case errors.Is(err, action.ErrNotFound):
			httputil.NotFound(w, "action not found")
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.OK(w, map[string]any{"updated": true})
}

// HandleDeleteAction removes an action and its embedding.
func (h *Handlers) HandleDeleteAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := strconv.ParseInt(chi.URLParam(r, "actionId"), 10, 64)
	if err != nil {
		httputil.BadRequest(w, "invalid action ID")
		return
	}

	if err := h.actions.Delete(r.Context(), actionID); err != nil {
		if errors.Is(err, action.ErrNotFound) {
			httputil.NotFound(w, "action not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.NoContent(w)
}
