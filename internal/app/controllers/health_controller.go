package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and database reachability
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health answers 200 when the database responds, 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.Error("Database unavailable"))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("ok"))
}
