package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/pkg/apperrors"
	"github.com/escolinha/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the wire taxonomy. Messages stay
// short and never carry internals; the cause is logged server-side only.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrGuardianEmailRequired):
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("E-mail do responsável é obrigatório para o plano premium."))
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("E-mail ou senha inválidos."))
	case errors.Is(err, apperrors.ErrPremiumRequired),
		errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Aluno não encontrado."))
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Professor não encontrado."))
	case errors.Is(err, apperrors.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Relatório não encontrado."))
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrTuitionNotFound),
		errors.Is(err, apperrors.ErrExpenseNotFound),
		errors.Is(err, apperrors.ErrLedgerEntryNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(message))
	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse("Erro interno no servidor."))
	}
}
