package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runStatsRouter(g *echo.Group, ctrl *controllers.StatsController) {
	g.GET("/stats", ctrl.GetStats)
}
