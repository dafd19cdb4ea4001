package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/services"
	"github.com/escolinha/backend/internal/middleware"
)

// FeedbackController handles pedagogical report endpoints.
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController.
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// GetByStudent lists a student's reports
// @Summary List feedbacks by student
// @Description Newest first, with author name. Guardians may only read students they are linked to.
// @Tags feedbacks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {array} models.Feedback
// @Failure 403 {object} dto.ErrorResponse
// @Router /feedbacks/aluno/{id} [get]
func (c *FeedbackController) GetByStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	feedbacks, err := c.feedbackService.GetByStudent(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, feedbacks)
}

// Create writes a new report
// @Summary Create feedback
// @Description Professors and admins only.
// @Tags feedbacks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FeedbackRequest true "Report data"
// @Success 201 {object} models.Feedback
// @Failure 403 {object} dto.ErrorResponse
// @Router /feedbacks [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	feedback, err := c.feedbackService.Create(ctx, &req,
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, feedback)
}

// Update rewrites a report
// @Summary Update feedback
// @Tags feedbacks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.FeedbackUpdateRequest true "Report data"
// @Success 200 {object} models.Feedback
// @Failure 404 {object} dto.ErrorResponse
// @Router /feedbacks/{id} [put]
func (c *FeedbackController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.FeedbackUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	feedback, err := c.feedbackService.Update(ctx, id, &req, middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, feedback)
}

// MarkRead flags a report as seen by the guardians
// @Summary Mark feedback as read
// @Tags feedbacks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /feedbacks/ler/{id} [put]
func (c *FeedbackController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.feedbackService.MarkRead(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Relatório marcado como lido."})
}

// Delete removes a report
// @Summary Delete feedback
// @Tags feedbacks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /feedbacks/{id} [delete]
func (c *FeedbackController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.feedbackService.Delete(ctx, id, middleware.CurrentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Relatório excluído com sucesso."})
}
