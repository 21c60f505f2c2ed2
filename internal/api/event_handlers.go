package api

import (
	"errors"
	"net/http"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
	"github.com/cradlewatch/cradlewatch/internal/pkg/logger"
	"github.com/cradlewatch/cradlewatch/internal/service/event"
	"github.com/cradlewatch/cradlewatch/internal/service/notify"
)

// HandleCreateEvent stores one classifier result without notifying.
func (h *Handlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var input event.IngestInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	ev, err := h.events.Ingest(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrMissingInfant), errors.Is(err, event.ErrMissingReason):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.Created(w, ev)
}

// analysisResultRequest is the classifier's notification callback. It
// references a cry event already stored through POST /api/events/create;
// the callback itself never inserts rows.
type analysisResultRequest struct {
	CryEventID int64  `json:"cryEventId"`
	InfantID   int64  `json:"infantId"`
	IsCrying   bool   `json:"isCrying"`
	Cause      string `json:"cause"`
	Severity   string `json:"severity"`
}

// HandleAnalysisResult alerts the guardian for an already-stored cry
// event. Notification problems never fail the callback; the classifier
// must not retry on our account.
func (h *Handlers) HandleAnalysisResult(w http.ResponseWriter, r *http.Request) {
	var req analysisResultRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	if req.CryEventID == 0 || req.InfantID == 0 {
		httputil.BadRequest(w, "cryEventId and infantId are required")
		return
	}

	if !req.IsCrying {
		httputil.OK(w, map[string]any{"notification": "not_crying"})
		return
	}

	status := "skipped"
	if h.dedup == nil || h.dedup.FirstDelivery(r.Context(), req.CryEventID) {
		result := h.dispatcher.Dispatch(r.Context(), notify.Event{
			EventID:  req.CryEventID,
			InfantID: req.InfantID,
			Cause:    domain.NormalizeCryType(req.Cause),
			Severity: domain.NormalizeSeverity(req.Severity),
		})
		status = "aborted"
		if result != "" {
			status = string(result)
		}
	} else {
		logger.Info("duplicate analysis callback, notification skipped", "event_id", req.CryEventID)
	}

	httputil.OK(w, map[string]any{"notification": status})
}
