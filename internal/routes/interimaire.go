package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runInterimaireRouter(g *echo.Group, ctrl *controllers.InterimaireController) {
	g.GET("/interimaires", ctrl.GetInterimaires)
	g.GET("/interimaires/lookup", ctrl.LookupInterimaires)
	g.GET("/interimaires/:id", ctrl.FindInterimaire)
	g.POST("/interimaires", ctrl.CreateInterimaire)
	g.PATCH("/interimaires/:id", ctrl.UpdateInterimaire)
	g.PATCH("/interimaires/:id/disponibilite", ctrl.UpdateDisponibilite)
	g.DELETE("/interimaires/:id", ctrl.DeleteInterimaire)
}
