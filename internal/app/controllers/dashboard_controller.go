package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/services"
	"github.com/escolinha/backend/internal/middleware"
	"github.com/escolinha/backend/internal/pkg/helpers"
	"github.com/escolinha/backend/internal/pkg/validation"
)

// DashboardController handles the reporting endpoints.
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard aggregates the admin home screen numbers
// @Summary Dashboard
// @Description Active counts, students by shift, ledger balance, birthday lists, projected tuition and salaries, current-month enrollments. The ledger window comes from inicio/fim or mes/ano.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param inicio query string false "Window start (YYYY-MM-DD)"
// @Param fim query string false "Window end (YYYY-MM-DD)"
// @Param mes query int false "Month (overrides inicio/fim together with ano)"
// @Param ano query int false "Year"
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	start := helpers.ParseDate(ctx.Query("inicio"))
	end := helpers.ParseDate(ctx.Query("fim"))

	if mes, ano := ctx.Query("mes"), ctx.Query("ano"); mes != "" && ano != "" {
		month, year, ok := validation.ParsePeriod(mes, ano)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Mês ou ano inválido"))
			return
		}
		s, e := helpers.MonthBounds(year, month)
		start, end = &s, &e
	}

	dashboard, err := c.dashboardService.GetDashboard(ctx, start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// GetMonthlyReport sums a month's income and expenses
// @Summary Monthly report
// @Tags relatorio
// @Produce json
// @Security BearerAuth
// @Param mes query int true "Month"
// @Param ano query int true "Year"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /relatorio/relatorio-mensal [get]
func (c *DashboardController) GetMonthlyReport(ctx *gin.Context) {
	month, year, ok := validation.ParsePeriod(ctx.Query("mes"), ctx.Query("ano"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Mês ou ano inválido"))
		return
	}

	report, err := c.dashboardService.GetMonthlyReport(ctx, month, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// GetDefaulters lists students with no tuition payment in the month
// @Summary Defaulter notification list
// @Tags inadimplentes
// @Produce json
// @Security BearerAuth
// @Param mes query int true "Month"
// @Param ano query int true "Year"
// @Success 200 {object} dto.DefaultersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /inadimplentes/notificacao [get]
func (c *DashboardController) GetDefaulters(ctx *gin.Context) {
	month, year, ok := validation.ParsePeriod(ctx.Query("mes"), ctx.Query("ano"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Mês ou ano inválido"))
		return
	}

	defaulters, err := c.dashboardService.GetDefaulters(ctx, month, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, defaulters)
}
