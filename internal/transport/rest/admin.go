package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

type dashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type messageService interface {
	ListRecent(ctx context.Context) ([]domain.OutboundMessage, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.OutboundMessage, error)
}

type qualityChecker interface {
	CheckQuality(ctx context.Context, message string, userContext map[string]any) domain.QualityReport
}

// AdminHandler serves the admin dashboard, message review and the quality
// checker.
type AdminHandler struct {
	dashboard dashboardService
	messages  messageService
	quality   qualityChecker
	log       *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(dashboard dashboardService, messages messageService, quality qualityChecker, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		dashboard: dashboard,
		messages:  messages,
		quality:   quality,
		log:       logger.With("handler", "admin"),
	}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Messages handles GET /api/admin/messages.
func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.ListRecent(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilSlice(messages))
}

type statusRequest struct {
	Status domain.MessageStatus `json:"status"`
}

// UpdateMessageStatus handles PATCH /api/admin/messages/{id}/status.
func (h *AdminHandler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	msg, err := h.messages.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type checkQualityRequest struct {
	Message     string         `json:"message"`
	UserContext map[string]any `json:"user_context"`
}

// CheckQuality handles POST /api/admin/agent/check-quality.
func (h *AdminHandler) CheckQuality(w http.ResponseWriter, r *http.Request) {
	var req checkQualityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.quality.CheckQuality(r.Context(), req.Message, req.UserContext))
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
