package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

const healthPingTimeout = 2 * time.Second

type HealthStatus struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	Time   string `json:"time"`
}

type HealthController struct {
	cache services.SearchCache
	log   *zap.Logger
}

func NewHealthController(cache services.SearchCache, log *zap.Logger) *HealthController {
	return &HealthController{cache: cache, log: log}
}

// GET /healthz
func (hc *HealthController) HealthzHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status: "ok",
		Cache:  hc.cache.Name(),
		Time:   utils.FormatRFC3339KST(utils.NowKST()),
	}

	if err := hc.cache.Ping(ctx); err != nil {
		hc.log.Warn("Search cache ping failed", zap.String("cache", status.Cache), zap.Error(err))
		status.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusServiceUnavailable,
			Message: "Search cache is unreachable",
			TraceID: c.GetString("trace_id"),
			Data:    status,
		})
		return
	}

	utils.RespondSuccess(c, status, "")
}
