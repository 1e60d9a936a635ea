package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"interim-system/internal/services"
	"interim-system/pkg/utils"
)

type StatsController struct {
	statsService *services.StatsService
	timeout      time.Duration
	logger       *zap.Logger
}

func NewStatsController(service *services.StatsService, timeout time.Duration, logger *zap.Logger) *StatsController {
	return &StatsController{statsService: service, timeout: timeout, logger: logger}
}

func (c *StatsController) GetStats(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	res := c.statsService.GetStats(reqCtx)
	return utils.SuccessResponse(ctx, res, "Statistiques récupérées", http.StatusOK)
}
