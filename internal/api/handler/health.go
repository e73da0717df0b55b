package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the backing stores answer within the probe
// timeout. Any failing dependency yields 503 with per-dependency status.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	status := http.StatusOK
	deps := map[string]string{}

	if h.db != nil {
		if err := h.db.Client().Ping(ctx, nil); err != nil {
			deps["mongo"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			deps["mongo"] = "up"
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			deps["redis"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			deps["redis"] = "up"
		}
	}

	return c.JSON(status, map[string]any{
		"status":       http.StatusText(status),
		"dependencies": deps,
	})
}
