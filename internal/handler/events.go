package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/GlowMine_Go/internal/eventlog"
)

// EventsResponse lists audit entries, newest first
type EventsResponse struct {
	Events []eventlog.Entry `json:"events"`
}

// EventLogHandler serves the audit trail
type EventLogHandler struct {
	svc eventlog.Service
}

// NewEventLogHandler creates a new event log handler
func NewEventLogHandler(svc eventlog.Service) *EventLogHandler {
	return &EventLogHandler{svc: svc}
}

// HandleListEvents returns recent audit entries
// @Summary List audit events
// @Description Privileged. Filters by subject, event type and start time.
// @Tags admin
// @Produce json
// @Param subject_id query string false "Subject"
// @Param type query string false "Event type, e.g. withdrawal.requested"
// @Param since query string false "RFC 3339 timestamp"
// @Param limit query int false "At most 100"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/events [get]
func (h *EventLogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := eventlog.Filter{
		SubjectID: q.Get("subject_id"),
		EventType: q.Get("type"),
	}

	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidSince)
			return
		}
		filter.Since = since
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidLimit)
			return
		}
		filter.Limit = limit
	}

	entries, err := h.svc.Events(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []eventlog.Entry{}
	}
	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}
