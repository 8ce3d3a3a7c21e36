// Package health serves the liveness endpoint polled by the hosting platform
package health

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Path is where the handler is mounted
const Path = "/healthz"

// DefaultTimeout bounds each check
const DefaultTimeout = 2 * time.Second

// Check returns an error when a dependency is unhealthy
type Check func(ctx context.Context) error

// Report is the JSON body written by the handler
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler runs every registered check on each request
type Handler struct {
	mu      sync.RWMutex
	checks  map[string]Check
	timeout time.Duration
}

// NewHandler creates a handler with no checks
func NewHandler() *Handler {
	return &Handler{
		checks:  make(map[string]Check),
		timeout: DefaultTimeout,
	}
}

// Add registers a named check, replacing any previous check with that name
func (h *Handler) Add(name string, check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// ServeHTTP answers 200 when every check passes and 503 otherwise
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	report := Report{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK

	for _, name := range names {
		h.mu.RLock()
		check := h.checks[name]
		h.mu.RUnlock()

		if err := check(ctx); err != nil {
			report.Checks[name] = err.Error()
			report.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		report.Checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		log.Printf("[Health] Failed to write report: %v", err)
	}
}

// NewServer mounts the handler on a server listening on addr
func NewServer(addr string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(Path, handler)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
