package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
)

const healthTimeout = 3 * time.Second

type probe struct {
	name string
	ping func(context.Context) error
}

// HealthHandler reports whether the document store, and Redis when the
// limiters use it, answer a ping. Any failed probe turns the response into 503.
type HealthHandler struct {
	probes []probe
}

func NewHealthHandler(store ports.HealthChecker, redisClient *redis.Client) *HealthHandler {
	h := &HealthHandler{probes: []probe{{name: "database", ping: store.Ping}}}
	if redisClient != nil {
		h.probes = append(h.probes, probe{name: "redis", ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}
	return h
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.probes))}
	for _, p := range h.probes {
		if err := p.ping(ctx); err != nil {
			resp.Checks[p.name] = "down: " + err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[p.name] = "ok"
	}

	if resp.Status != "ok" {
		resp.Message = "one or more checks failed"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
