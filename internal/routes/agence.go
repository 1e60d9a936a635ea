package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runAgenceRouter(g *echo.Group, ctrl *controllers.AgenceController) {
	g.GET("/agences", ctrl.GetAgences)
	g.GET("/agences/lookup", ctrl.LookupAgences)
	g.GET("/agences/:id", ctrl.FindAgence)
	g.POST("/agences", ctrl.CreateAgence)
	g.PATCH("/agences/:id", ctrl.UpdateAgence)
	g.DELETE("/agences/:id", ctrl.DeleteAgence)
}
