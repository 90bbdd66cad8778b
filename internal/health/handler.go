// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

const probeTimeout = 5 * time.Second

// Check is one named readiness dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

func Pinger(name string, ping func(ctx context.Context) error) Check {
	return Check{Name: name, Probe: ping}
}

type Handler struct {
	checks   []Check
	shutdown atomic.Bool
}

func NewHandler(checks ...Check) *Handler {
	return &Handler{checks: checks}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	results := h.run(ctx)

	status := "ok"
	code := http.StatusOK
	for _, res := range results {
		if !res.Healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	h.writeStatus(w, code, ReadinessResponse{
		Status: status,
		Checks: results,
	})
}

func (h *Handler) run(ctx context.Context) []CheckResult {
	results := make([]CheckResult, len(h.checks))

	var wg sync.WaitGroup
	for i, check := range h.checks {
		wg.Go(func() {
			results[i] = probe(ctx, check)
		})
	}
	wg.Wait()

	return results
}

func probe(ctx context.Context, check Check) CheckResult {
	res := CheckResult{Name: check.Name, Healthy: true}

	if check.Probe == nil {
		res.Healthy = false
		res.Message = "not configured"
		return res
	}

	start := time.Now()
	err := check.Probe(ctx)
	res.Latency = time.Since(start).String()

	if err != nil {
		res.Healthy = false
		res.Message = "check failed"
	}

	return res
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	core.JSON(w, status, data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
}

type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
