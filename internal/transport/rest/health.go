package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	db      dbPinger
	version string
	llmMode string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. llmMode is reported as the
// status of the llm component: the provider name, or "mock" without a key.
func NewHealthHandler(db dbPinger, version, llmMode string) *HealthHandler {
	return &HealthHandler{db: db, version: version, llmMode: llmMode, now: time.Now}
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus describes one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live handles GET /live. The process answering is enough.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready handles GET /ready: 503 until the database answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())
	h.respond(w, db.Status == "ok", HealthResponse{})
}

// Health handles GET /health. Only the database decides the overall status;
// a mocked LLM is reported but keeps the service healthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())
	h.respond(w, db.Status == "ok", HealthResponse{
		Version: h.version,
		Components: map[string]CompStatus{
			"database": db,
			"llm":      {Status: h.llmMode},
		},
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := h.now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: h.now().Sub(start).String()}
}

func (h *HealthHandler) respond(w http.ResponseWriter, ok bool, resp HealthResponse) {
	resp.Timestamp = h.now()
	if !ok {
		resp.Status = "down"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Status = "ok"
	writeJSON(w, http.StatusOK, resp)
}
