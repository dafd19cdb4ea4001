package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/services"
	"github.com/escolinha/backend/internal/middleware"
)

// TeacherController handles staff endpoints.
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController.
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// GetAllTeachers lists every teacher
// @Summary List teachers
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TeacherResponse
// @Router /professores [get]
func (c *TeacherController) GetAllTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.GetAllTeachers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if teachers == nil {
		teachers = []dto.TeacherResponse{}
	}
	ctx.JSON(http.StatusOK, teachers)
}

// GetTeacherByID retrieves a teacher with their expense history
// @Summary Get teacher by ID
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.TeacherDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /professores/{id} [get]
func (c *TeacherController) GetTeacherByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetTeacherByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, teacher)
}

// CreateTeacher creates a teacher
// @Summary Create teacher
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TeacherRequest true "Teacher data"
// @Success 201 {object} dto.TeacherPayload
// @Failure 400 {object} dto.ErrorResponse
// @Router /professores [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.TeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	payload, err := c.teacherService.CreateTeacher(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, payload)
}

// UpdateTeacher updates a teacher
// @Summary Update teacher
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.TeacherRequest true "Teacher data"
// @Success 200 {object} dto.TeacherPayload
// @Failure 404 {object} dto.ErrorResponse
// @Router /professores/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.TeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	payload, err := c.teacherService.UpdateTeacher(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payload)
}

// DeleteTeacher removes a teacher
// @Summary Delete teacher
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.TeacherPayload
// @Failure 404 {object} dto.ErrorResponse
// @Router /professores/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	payload, err := c.teacherService.DeleteTeacher(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payload)
}
