package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/pkg/database"
	pkgredis "github.com/commu-board/auth-service/pkg/redis"
)

// HealthHandler reports liveness and readiness
type HealthHandler struct {
	db      *database.PostgresDB
	redis   *pkgredis.Client
	version string
}

// NewHealthHandler creates a new HealthHandler. The redis client may be
// nil when the cache is disabled.
func NewHealthHandler(db *database.PostgresDB, redis *pkgredis.Client, version string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, version: version}
}

// Health is the liveness probe
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready is the readiness probe: it checks the database and, when
// configured, Redis.
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	status := http.StatusOK

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
