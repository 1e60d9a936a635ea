package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"interim-system/internal/entities"
	"interim-system/internal/services"
	"interim-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	timeout       time.Duration
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, timeout time.Duration, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, timeout: timeout, logger: logger}
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	filter, format := c.parseFilters(ctx)
	c.logger.Debug("Demande de rapport", zap.Any("filters", filter), zap.String("format", format))

	data, total, err := c.reportService.GetReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Rapport généré", http.StatusOK, total)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.ReportFilter, string) {
	stdFilter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.ReportFilter{
		Page:    stdFilter.Page,
		PerPage: stdFilter.Limit,
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		// Exporte tout, l'agent filtre ensuite dans son tableur.
		filter.Page = 1
		filter.PerPage = 100000
	}

	dateLayout := "2006-01-02"
	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(dateLayout, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(dateLayout, dt); err == nil {
			filter.DateTo = &t
		}
	}

	parseList := func(name string) []string {
		if arr, ok := ctx.QueryParams()[name+"[]"]; ok {
			return arr
		}
		if s := ctx.QueryParam(name); s != "" {
			return strings.Split(s, ",")
		}
		return nil
	}

	filter.Statuses = parseList("statuses")
	filter.AgenceIDs = parseList("agence_ids")

	return filter, format
}

var reportHeaders = []string{
	"Commande", "Établissement", "Ville", "Agence", "Code agence", "Qualification",
	"Intérimaire", "Date début", "Date fin", "Horaire début", "Horaire fin",
	"Statut", "Motif d'annulation", "Notes", "Créée le",
}

func rowToSlice(item entities.ReportItem) []interface{} {
	dateFmt := "02/01/2006"
	return []interface{}{
		item.CommandeID, item.ClientNom, utils.NullStringToString(item.ClientVille),
		utils.NullStringToString(item.AgenceNom), utils.NullStringToString(item.AgenceCode),
		utils.NullStringToString(item.QualificationNom),
		utils.NullStringToString(item.InterimaireNom),
		item.DateDebut.Format(dateFmt), item.DateFin.Format(dateFmt),
		utils.NullStringToString(item.HoraireDebut), utils.NullStringToString(item.HoraireFin),
		item.Status, utils.NullStringToString(item.MotifAnnulation), utils.NullStringToString(item.Notes),
		item.CreatedAt.Format(dateFmt + " 15:04"),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Commandes"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "O1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 36)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "D", "G", 22)
	f.SetColWidth(sheet, "M", "N", 40)

	fileName := fmt.Sprintf("commandes_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
