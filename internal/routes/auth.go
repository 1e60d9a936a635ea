package routes

import (
	"github.com/labstack/echo/v4"

	"interim-system/internal/controllers"
)

// runAuthRouter sépare les routes publiques (login, refresh) du profil
// qui exige un jeton d'accès.
func runAuthRouter(public *echo.Group, secure *echo.Group, ctrl *controllers.AuthController) {
	public.POST("/auth/login", ctrl.Login)
	public.POST("/auth/refresh", ctrl.RefreshToken)
	secure.GET("/auth/me", ctrl.Me)
}
