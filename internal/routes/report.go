package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController) {
	g.GET("/reports/commandes", ctrl.GetReport)
}
