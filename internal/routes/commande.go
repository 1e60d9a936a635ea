package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runCommandeRouter(g *echo.Group, ctrl *controllers.CommandeController) {
	g.GET("/commandes", ctrl.GetCommandes)
	g.GET("/commandes/:id", ctrl.FindCommande)
	g.POST("/commandes", ctrl.CreateCommande)
	g.PATCH("/commandes/:id", ctrl.UpdateCommande)
	g.PATCH("/commandes/:id/status", ctrl.UpdateStatus)
	g.PATCH("/commandes/:id/assign", ctrl.AssignInterimaire)
	g.PATCH("/commandes/:id/unassign", ctrl.UnassignInterimaire)
	g.DELETE("/commandes/:id", ctrl.DeleteCommande)
}
