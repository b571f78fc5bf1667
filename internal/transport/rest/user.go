package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/user"
)

type userService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListEvents(ctx context.Context, userID string) ([]domain.Event, error)
	ListMessages(ctx context.Context, userID string) ([]domain.OutboundMessage, error)
	List(ctx context.Context, input user.ListInput) ([]domain.UserProfile, int, error)
	GenerateText(ctx context.Context, input user.GenerateTextInput) (string, error)
	GrowthOpportunities(ctx context.Context, userID string) ([]domain.GrowthOpportunity, error)
}

// UserHandler serves customer profiles and per-user agent tools.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// Get handles GET /api/users/{user_id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Events handles GET /api/users/{user_id}/events.
func (h *UserHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilSlice(events))
}

// Messages handles GET /api/users/{user_id}/messages.
func (h *UserHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.ListMessages(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilSlice(messages))
}

type userListResponse struct {
	Users []domain.UserProfile `json:"users"`
	Total int                  `json:"total"`
}

// List handles GET /api/admin/users?limit=&offset=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	input := user.ListInput{}
	q := r.URL.Query()
	var err error
	if v := q.Get("limit"); v != "" {
		if input.Limit, err = strconv.Atoi(v); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("limit", "must be an integer"))
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if input.Offset, err = strconv.Atoi(v); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("offset", "must be an integer"))
			return
		}
	}

	users, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userListResponse{Users: nonNilSlice(users), Total: total})
}

type generateTextRequest struct {
	Channel         domain.Channel `json:"channel"`
	RecentViews     []string       `json:"recent_views"`
	PurchaseHistory []string       `json:"purchase_history"`
}

// GenerateText handles POST /api/admin/users/{user_id}/generate-text.
func (h *UserHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req generateTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	text, err := h.svc.GenerateText(r.Context(), user.GenerateTextInput{
		UserID:          chi.URLParam(r, "user_id"),
		Channel:         req.Channel,
		RecentViews:     req.RecentViews,
		PurchaseHistory: req.PurchaseHistory,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// Growth handles GET /api/admin/users/{user_id}/growth.
func (h *UserHandler) Growth(w http.ResponseWriter, r *http.Request) {
	ops, err := h.svc.GrowthOpportunities(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"growth_opportunities": nonNilSlice(ops)})
}
