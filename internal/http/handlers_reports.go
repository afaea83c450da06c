package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"finpro/internal/report"
	"finpro/internal/services"
)

type adviceResponse struct {
	Available bool   `json:"available"`
	Advice    string `json:"advice,omitempty"`
}

// handleAdvice returns spending advice for the user's recent transactions.
// An unavailable or failing advice backend is not an error: the dashboard
// simply renders without the advice card.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	text, err := s.finance.Advice(r.Context(), user.Key())
	if err != nil {
		if errors.Is(err, services.ErrAdviceUnavailable) {
			writeJSON(w, http.StatusOK, adviceResponse{Available: false})
			return
		}
		slog.ErrorContext(r.Context(), "Advice failed",
			"component", "http",
			"operation", "advise",
			"user", user.Key(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "could not produce advice")
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{Available: true, Advice: text})
}

// handleExportReport streams the month's statement as an XLSX workbook.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	period, err := parsePeriodParam(r, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	rep, err := s.finance.MonthlyReport(r.Context(), user.Key(), period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report assembly failed",
			"component", "http",
			"operation", "export",
			"user", user.Key(),
			"period", period.String(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "could not assemble report")
		return
	}

	// Render to a buffer first so a mid-write failure never leaves the
	// client with a truncated workbook and a 200 status.
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, rep); err != nil {
		slog.ErrorContext(r.Context(), "Report render failed",
			"component", "http",
			"operation", "export",
			"user", user.Key(),
			"period", period.String(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "could not render report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "laporan-"+period.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type archiveRequest struct {
	Period string `json:"period"` // YYYY-MM
}

// handleArchiveReport enqueues an asynchronous statement render. The worker
// picks the request up from the queue and writes the workbook to disk.
func (s *Server) handleArchiveReport(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req archiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	period, err := parsePeriodString(req.Period, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	if err := s.finance.RequestStatement(r.Context(), user.Key(), period); err != nil {
		if errors.Is(err, services.ErrArchiveUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "statement archive is not configured")
			return
		}
		slog.ErrorContext(r.Context(), "Archive request failed",
			"component", "http",
			"operation", "archive",
			"user", user.Key(),
			"period", period.String(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "could not enqueue statement request")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "queued",
		"period": period.String(),
	})
}
