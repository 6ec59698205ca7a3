package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nuriqa/internal/session"
)

const (
	SessionHeader     = "X-Session-ID"
	sessionContextKey = "session_id"
	readyTimeout      = 5 * time.Second
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Handler wires HTTP routes to the readiness checks.
type Handler struct {
	logger *zap.Logger

	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:   logger,
		checkers: make(map[string]Checker),
	}
}

// AddCheck registers a readiness check under name, replacing any previous
// check with that name.
func (h *Handler) AddCheck(name string, c Checker) {
	h.mu.Lock()
	h.checkers[name] = c
	h.mu.Unlock()
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.SessionMiddleware())
	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)
}

// SessionMiddleware validates the X-Session-ID header, minting a new id when
// the header is absent, and echoes it on the response.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = session.NewID()
		} else if !session.IsCanonical(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}
		c.Set(sessionContextKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext returns the id set by SessionMiddleware.
func SessionIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) readyz(c *gin.Context) {
	results := h.runChecks(c.Request.Context())
	status := http.StatusOK
	for _, r := range results {
		if r != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(status, gin.H{"checks": results})
}

func (h *Handler) runChecks(ctx context.Context) map[string]string {
	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	checks := make([]Checker, len(names))
	for i, name := range names {
		checks[i] = h.checkers[name]
	}
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	outcomes := make([]string, len(names))
	var g errgroup.Group
	for i := range checks {
		i := i
		g.Go(func() error {
			if err := checks[i](ctx); err != nil {
				h.logger.Warn("readiness check failed", zap.String("check", names[i]), zap.Error(err))
				outcomes[i] = err.Error()
				return nil
			}
			outcomes[i] = "ok"
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]string, len(names))
	for i, name := range names {
		results[name] = outcomes[i]
	}
	return results
}
