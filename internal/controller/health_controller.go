package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// HealthResponse is returned without the response envelope.
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service status and the reachability of its stores
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Components: map[string]string{"database": "up"},
	}
	code := http.StatusOK

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		resp.Status = "error"
		resp.Components["database"] = "down"
		code = http.StatusServiceUnavailable
	}

	// The cache is optional; a dead cache degrades but does not fail the check.
	if c.Redis != nil {
		resp.Components["cache"] = "up"
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			resp.Components["cache"] = "down"
		}
	}

	ctx.JSON(code, resp)
}
