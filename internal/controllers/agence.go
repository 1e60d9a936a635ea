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

type AgenceController struct {
	agenceService *services.AgenceService
	timeout       time.Duration
	logger        *zap.Logger
}

func NewAgenceController(service *services.AgenceService, timeout time.Duration, logger *zap.Logger) *AgenceController {
	return &AgenceController{agenceService: service, timeout: timeout, logger: logger}
}

func (c *AgenceController) GetAgences(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	agences, total, err := c.agenceService.GetAgences(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, agences, "Liste des agences récupérée", http.StatusOK, total)
}

func (c *AgenceController) LookupAgences(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	res := c.agenceService.Lookup(reqCtx, ctx.QueryParam("search"))
	return utils.SuccessResponse(ctx, res, "Liste de sélection récupérée", http.StatusOK)
}

func (c *AgenceController) FindAgence(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.agenceService.FindAgence(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Agence trouvée", http.StatusOK)
}

func (c *AgenceController) CreateAgence(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	var payload dto.CreateAgenceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Corps de requête invalide"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.agenceService.CreateAgence(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Agence créée", http.StatusCreated)
}

func (c *AgenceController) UpdateAgence(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateAgenceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Corps de requête invalide"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.agenceService.UpdateAgence(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Agence mise à jour", http.StatusOK)
}

func (c *AgenceController) DeleteAgence(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	id, err := parseUUIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.agenceService.DeleteAgence(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Agence supprimée", http.StatusOK)
}
