package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "interim-system/pkg/errors"
)

// parseUUIDParam lit et valide le paramètre :id de la route.
func parseUUIDParam(ctx echo.Context) (string, error) {
	raw := ctx.Param("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewHttpError(
			http.StatusBadRequest,
			"Identifiant invalide",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return raw, nil
}
