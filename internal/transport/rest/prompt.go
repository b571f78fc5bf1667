package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
)

type promptService interface {
	List(ctx context.Context) ([]domain.PromptTemplate, error)
	Get(ctx context.Context, id int64) (*domain.PromptTemplate, error)
	Create(ctx context.Context, input prompt.SaveInput) (*domain.PromptTemplate, error)
	Update(ctx context.Context, id int64, input prompt.SaveInput) (*domain.PromptTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// PromptHandler serves template administration.
type PromptHandler struct {
	svc promptService
	log *slog.Logger
}

// NewPromptHandler creates a PromptHandler.
func NewPromptHandler(svc promptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{svc: svc, log: logger.With("handler", "prompt")}
}

type promptRequest struct {
	Name        string `json:"name"`
	Template    string `json:"template"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (p promptRequest) input() prompt.SaveInput {
	return prompt.SaveInput{
		Name:        p.Name,
		Template:    p.Template,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

// List handles GET /api/admin/prompts.
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilSlice(prompts))
}

// Get handles GET /api/admin/prompts/{id}.
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/admin/prompts.
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/prompts/{id}.
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req promptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	p, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/prompts/{id}.
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
