package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/event"
)

type eventService interface {
	RecordEvent(ctx context.Context, input event.RecordInput) (*event.Outcome, error)
}

// EventHandler serves the public event intake.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "event")}
}

// eventTime accepts RFC 3339 timestamps and ISO 8601 ones without a zone,
// which are read as UTC.
type eventTime struct{ time.Time }

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t *eventTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

type eventRequest struct {
	UserID     string         `json:"user_id"`
	Event      string         `json:"event"`
	ProductID  *string        `json:"product_id"`
	Timestamp  *eventTime     `json:"timestamp"`
	Properties map[string]any `json:"properties"`
}

type eventResponse struct {
	Status        string          `json:"status"`
	AgentDecision domain.Decision `json:"agent_decision"`
	MessageID     *int64          `json:"message_id,omitempty"`
}

// Record handles POST /api/event.
func (h *EventHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := event.RecordInput{
		UserID:     req.UserID,
		Event:      req.Event,
		ProductID:  req.ProductID,
		Properties: req.Properties,
	}
	if req.Timestamp != nil {
		input.Timestamp = &req.Timestamp.Time
	}

	out, err := h.svc.RecordEvent(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{
		Status:        "processed",
		AgentDecision: out.Decision,
		MessageID:     out.MessageID,
	})
}
