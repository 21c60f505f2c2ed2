package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
	"github.com/cradlewatch/cradlewatch/internal/service/report"
)

// reportWindow resolves the requested date range, falling back to the
// last defaultDays days when the query params are absent.
func (h *Handlers) reportWindow(r *http.Request) (string, string) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	if start == "" || end == "" {
		now := time.Now().UTC()
		end = now.Format("2006-01-02")
		start = now.AddDate(0, 0, -(h.defaultDays - 1)).Format("2006-01-02")
	}
	return start, end
}

func infantIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "infantId"), 10, 64)
}

// HandleReportSummary returns the aggregated statistics for one infant
// over a date range.
func (h *Handlers) HandleReportSummary(w http.ResponseWriter, r *http.Request) {
	infantID, err := infantIDParam(r)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	start, end := h.reportWindow(r)
	data, err := h.reports.Compute(r.Context(), infantID, start, end)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, data)
}

// HandleReportText returns the AI narrative for the range, along with
// the statistics it was generated from.
func (h *Handlers) HandleReportText(w http.ResponseWriter, r *http.Request) {
	infantID, err := infantIDParam(r)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	start, end := h.reportWindow(r)
	text, data, err := h.reports.Text(r.Context(), infantID, start, end)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"reportText": text,
		"stats":      data,
	})
}

// HandleGenerateReport computes stats, narrates them and persists the
// result as a stored report. The date range may come from the JSON body
// or from query params; an empty body means the default window.
func (h *Handlers) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	infantID, err := infantIDParam(r)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	start, end := h.reportWindow(r)
	if body.StartDate != "" && body.EndDate != "" {
		start, end = body.StartDate, body.EndDate
	}
	rep, err := h.reports.Generate(r.Context(), infantID, start, end)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.Created(w, rep)
}

// HandleListReports returns previously generated reports, newest first.
func (h *Handlers) HandleListReports(w http.ResponseWriter, r *http.Request) {
	infantID, err := infantIDParam(r)
	if err != nil {
		httputil.BadRequest(w, "invalid infant ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reports, err := h.reports.List(r.Context(), infantID, limit, offset)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, reports)
}
