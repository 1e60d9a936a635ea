package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"interim-system/internal/dto"
	"interim-system/internal/services"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/utils"
)

type InterimaireController struct {
	interimaireService *services.InterimaireService
	timeout            time.Duration
	logger             *zap.Logger
}

func NewInterimaireController(service *services.InterimaireService, timeout time.Duration, logger *zap.Logger) *InterimaireController {
	return &InterimaireController{interimaireService: service, timeout: timeout, logger: logger}
}

func (c *InterimaireController) GetInterimaires(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	interimaires, total, err := c.interimaireService.GetInterimaires(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, interimaires, "Liste des intérimaires récupérée", http.StatusOK, total)
}

func (c *InterimaireController) LookupInterimaires(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	res := c.interimaireService.Lookup(reqCtx, ctx.QueryParam("search"))
	return utils.SuccessResponse(ctx, res, "Liste de sélection récupérée", http.StatusOK)
}

func (c *InterimaireController) FindInterimaire(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interimaireService.FindInterimaire(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Intérimaire trouvé", http.StatusOK)
}

func (c *InterimaireController) CreateInterimaire(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	var payload dto.CreateInterimaireDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Corps de requête invalide"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interimaireService.CreateInterimaire(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Intérimaire créé", http.StatusCreated)
}

func (c *InterimaireController) UpdateInterimaire(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateInterimaireDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Corps de requête invalide"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interimaireService.UpdateInterimaire(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Intérimaire mis à jour", http.StatusOK)
}

func (c *InterimaireController) UpdateDisponibilite(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDisponibiliteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Corps de requête invalide"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interimaireService.UpdateDisponibilite(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Disponibilité mise à jour", http.StatusOK)
}

func (c *InterimaireController) DeleteInterimaire(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.interimaireService.DeleteInterimaire(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Intérimaire supprimé", http.StatusOK)
}
