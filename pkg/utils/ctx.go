package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/contextkeys"
)

// Ctx dérive un contexte borné dans le temps depuis la requête courante.
// Toute opération vers la persistance doit passer par un contexte annulable.
func Ctx(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}
