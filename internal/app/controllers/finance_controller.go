package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/services"
	"github.com/escolinha/backend/internal/middleware"
)

// FinanceController handles tuition, expense, ledger and monthly closing
// endpoints.
type FinanceController struct {
	financeService services.FinanceService
}

// NewFinanceController creates a new FinanceController.
func NewFinanceController(financeService services.FinanceService) *FinanceController {
	return &FinanceController{financeService: financeService}
}

// GetTuitionByStudent lists a student's tuition payments
// @Summary List tuition payments by student
// @Tags mensalidades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {array} dto.TuitionResponse
// @Router /mensalidades/aluno/{id} [get]
func (c *FinanceController) GetTuitionByStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	tuitions, err := c.financeService.GetTuitionByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if tuitions == nil {
		tuitions = []dto.TuitionResponse{}
	}
	ctx.JSON(http.StatusOK, tuitions)
}

// CreateTuition records a tuition payment
// @Summary Create tuition payment
// @Tags mensalidades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TuitionRequest true "Payment data"
// @Success 201 {object} dto.TuitionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /mensalidades [post]
func (c *FinanceController) CreateTuition(ctx *gin.Context) {
	var req dto.TuitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	tuition, err := c.financeService.CreateTuition(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, tuition)
}

// GetExpenseByID retrieves an expense
// @Summary Get expense by ID
// @Tags despesas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /despesas/{id} [get]
func (c *FinanceController) GetExpenseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	expense, err := c.financeService.GetExpenseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, expense)
}

// GetExpensesByTeacher lists expenses tied to a teacher
// @Summary List expenses by teacher
// @Tags despesas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {array} dto.ExpenseResponse
// @Router /despesas/professor/{id} [get]
func (c *FinanceController) GetExpensesByTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	expenses, err := c.financeService.GetExpensesByTeacher(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if expenses == nil {
		expenses = []dto.ExpenseResponse{}
	}
	ctx.JSON(http.StatusOK, expenses)
}

// CreateExpense records an expense
// @Summary Create expense
// @Tags despesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExpenseRequest true "Expense data"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /despesas [post]
func (c *FinanceController) CreateExpense(ctx *gin.Context) {
	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	expense, err := c.financeService.CreateExpense(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, expense)
}

// UpdateExpense rewrites an expense
// @Summary Update expense
// @Tags despesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body dto.ExpenseRequest true "Expense data"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /despesas/{id} [put]
func (c *FinanceController) UpdateExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	expense, err := c.financeService.UpdateExpense(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
// @Summary Delete expense
// @Tags despesas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /despesas/{id} [delete]
func (c *FinanceController) DeleteExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.financeService.DeleteExpense(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Despesa removida com sucesso."})
}

// GetAllLedgerEntries lists the cash-flow ledger
// @Summary List ledger entries
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LedgerEntryResponse
// @Router /lancamentos [get]
func (c *FinanceController) GetAllLedgerEntries(ctx *gin.Context) {
	entries, err := c.financeService.GetAllLedgerEntries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if entries == nil {
		entries = []dto.LedgerEntryResponse{}
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetLedgerEntryByID retrieves a ledger entry
// @Summary Get ledger entry by ID
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lancamentos/{id} [get]
func (c *FinanceController) GetLedgerEntryByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	entry, err := c.financeService.GetLedgerEntryByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// CreateLedgerEntry records a cash movement
// @Summary Create ledger entry
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LedgerEntryRequest true "Entry data"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /lancamentos [post]
func (c *FinanceController) CreateLedgerEntry(ctx *gin.Context) {
	var req dto.LedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	entry, err := c.financeService.CreateLedgerEntry(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// UpdateLedgerEntry rewrites a ledger entry
// @Summary Update ledger entry
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param request body dto.LedgerEntryRequest true "Entry data"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lancamentos/{id} [put]
func (c *FinanceController) UpdateLedgerEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.LedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	entry, err := c.financeService.UpdateLedgerEntry(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// DeleteLedgerEntry removes a ledger entry
// @Summary Delete ledger entry
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lancamentos/{id} [delete]
func (c *FinanceController) DeleteLedgerEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.financeService.DeleteLedgerEntry(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Lançamento removido com sucesso."})
}

// CloseMonth snapshots the month's ledger balance
// @Summary Close month
// @Description Computes the ledger balance of the given month (current month when omitted) and upserts the snapshot.
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClosingRequest false "Period"
// @Success 200 {object} dto.ClosingPayload
// @Failure 400 {object} dto.ErrorResponse
// @Router /caixa [post]
func (c *FinanceController) CloseMonth(ctx *gin.Context) {
	var req dto.ClosingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	usuario, _ := ctx.Get(middleware.ContextEmail)
	email, _ := usuario.(string)

	payload, err := c.financeService.CloseMonth(ctx, &req, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payload)
}
