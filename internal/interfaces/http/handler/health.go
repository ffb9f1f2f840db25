package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stylehub/backend/internal/interfaces/http/dto"
)

const dependencyCheckTimeout = 3 * time.Second

// HealthHandler reports service liveness and dependency connectivity
type HealthHandler struct {
	BaseHandler
	db        *mongo.Database
	redis     *redis.Client
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler. The redis client may be
// nil when view history runs on the in-memory store.
func NewHealthHandler(db *mongo.Database, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status" example:"ok"`
	GoVersion    string            `json:"go_version" example:"go1.25.5"`
	Uptime       string            `json:"uptime" example:"1h30m45s"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health godoc
// @Summary      Health check
// @Description  Reports service status and the connectivity of its backing stores
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dependencyCheckTimeout)
	defer cancel()

	deps := make(map[string]string)
	healthy := true

	if err := h.db.Client().Ping(ctx, nil); err != nil {
		deps["mongodb"] = "unreachable"
		healthy = false
	} else {
		deps["mongodb"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = "unreachable"
			healthy = false
		} else {
			deps["redis"] = "ok"
		}
	}

	resp := HealthResponse{
		Status:       "ok",
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, dto.NewSuccessResponse(resp))
}
