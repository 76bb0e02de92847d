// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db    *core.Database
	redis *core.Redis
}

func NewHandler(db *core.Database, redis *core.Redis) *Handler {
	return &Handler{db: db, redis: redis}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/livez", h.Live)
	r.Get("/readyz", h.Ready)
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health reports each dependency individually; the overall status is
// degraded when any check fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)

	status := "ok"
	code := http.StatusOK
	for _, result := range checks {
		if result.Status != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	core.WriteJSONBody(w, map[string]any{
		"status": status,
		"checks": checks,
		"pools":  h.poolStats(),
	})
}

func (h *Handler) poolStats() map[string]any {
	dbStats := h.db.Stats()
	redisStats := h.redis.PoolStats()

	return map[string]any{
		"postgres": map[string]any{
			"open":    dbStats.OpenConnections,
			"in_use":  dbStats.InUse,
			"idle":    dbStats.Idle,
			"waiting": dbStats.WaitCount,
		},
		"redis": map[string]any{
			"total": redisStats.TotalConns,
			"idle":  redisStats.IdleConns,
			"stale": redisStats.StaleConns,
			"hits":  redisStats.Hits,
		},
	}
}

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	core.OK(w, map[string]string{"status": "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)

	for _, result := range checks {
		if result.Status != "ok" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			core.WriteJSONBody(w, map[string]any{
				"status": "not ready",
				"checks": checks,
			})
			return
		}
	}

	core.OK(w, map[string]string{"status": "ready"})
}

func (h *Handler) runChecks(ctx context.Context) map[string]checkResult {
	checks := make(map[string]checkResult, 2)

	var mu sync.Mutex
	var wg sync.WaitGroup

	check := func(name string, p pinger) {
		defer wg.Done()

		result := checkResult{Status: "ok"}
		if err := p.Ping(ctx); err != nil {
			result = checkResult{Status: "unavailable", Error: err.Error()}
		}

		mu.Lock()
		checks[name] = result
		mu.Unlock()
	}

	wg.Add(2)
	go check("postgres", h.db)
	go check("redis", h.redis)
	wg.Wait()

	return checks
}
