package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

func runQualificationRouter(g *echo.Group, ctrl *controllers.QualificationController) {
	g.GET("/qualifications", ctrl.GetQualifications)
	g.GET("/qualifications/lookup", ctrl.LookupQualifications)
	g.GET("/qualifications/:id", ctrl.FindQualification)
	g.POST("/qualifications", ctrl.CreateQualification)
	g.PATCH("/qualifications/:id", ctrl.UpdateQualification)
	g.DELETE("/qualifications/:id", ctrl.DeleteQualification)
}
