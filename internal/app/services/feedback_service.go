package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/apperrors"
)

// FeedbackService defines the interface for pedagogical report operations.
// The requester's identity travels with every call because guardians may only
// read reports of students they are linked to.
type FeedbackService interface {
	GetByStudent(ctx context.Context, alunoID, requesterID int64, requesterRole models.RoleType) ([]*models.Feedback, error)
	Create(ctx context.Context, req *dto.FeedbackRequest, autorID int64, autorRole models.RoleType) (*models.Feedback, error)
	Update(ctx context.Context, id int64, req *dto.FeedbackUpdateRequest, requesterRole models.RoleType) (*models.Feedback, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64, requesterRole models.RoleType) error
}

type feedbackServiceImpl struct {
	feedbackRepo repositories.IFeedbackRepository
	linkRepo     repositories.ILinkRepository
	studentRepo  repositories.IStudentRepository
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(
	feedbackRepo repositories.IFeedbackRepository,
	linkRepo repositories.ILinkRepository,
	studentRepo repositories.IStudentRepository,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		linkRepo:     linkRepo,
		studentRepo:  studentRepo,
		logger:       logger,
	}
}

// GetByStudent lists a student's reports, newest first. A guardian must hold
// a link to the student; staff roles see everything.
func (s *feedbackServiceImpl) GetByStudent(ctx context.Context, alunoID, requesterID int64, requesterRole models.RoleType) ([]*models.Feedback, error) {
	if requesterRole == models.RoleGuardian {
		linked, err := s.linkRepo.Exists(ctx, requesterID, alunoID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, apperrors.NewForbiddenError("Acesso negado a este aluno.")
		}
	}

	feedbacks, err := s.feedbackRepo.GetByStudent(ctx, alunoID)
	if err != nil {
		return nil, err
	}
	if feedbacks == nil {
		feedbacks = []*models.Feedback{}
	}
	return feedbacks, nil
}

// Create writes a new report. Guardians cannot author reports.
func (s *feedbackServiceImpl) Create(ctx context.Context, req *dto.FeedbackRequest, autorID int64, autorRole models.RoleType) (*models.Feedback, error) {
	if autorRole == models.RoleGuardian {
		return nil, apperrors.NewForbiddenError("Apenas professores e admin podem criar relatórios.")
	}

	if _, err := s.studentRepo.GetByID(ctx, req.AlunoID); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		AlunoID:             req.AlunoID,
		AutorID:             autorID,
		Bimestre:            req.Bimestre,
		AvaliacaoPedagogica: orEmptyMap(req.AvaliacaoPedagogica),
		AvaliacaoPsico:      orEmptyMap(req.AvaliacaoPsico),
		Fotos:               orEmptySlice(req.Fotos),
		Observacao:          req.Observacao,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("feedbackId", feedback.ID).
		Int64("alunoId", feedback.AlunoID).
		Msg("Feedback created")

	return feedback, nil
}

// Update rewrites an existing report's editable fields.
func (s *feedbackServiceImpl) Update(ctx context.Context, id int64, req *dto.FeedbackUpdateRequest, requesterRole models.RoleType) (*models.Feedback, error) {
	if requesterRole == models.RoleGuardian {
		return nil, apperrors.NewForbiddenError("Apenas professores e admin podem editar relatórios.")
	}

	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Bimestre != "" {
		feedback.Bimestre = req.Bimestre
	}
	if req.AvaliacaoPedagogica != nil {
		feedback.AvaliacaoPedagogica = req.AvaliacaoPedagogica
	}
	if req.AvaliacaoPsico != nil {
		feedback.AvaliacaoPsico = req.AvaliacaoPsico
	}
	if req.Fotos != nil {
		feedback.Fotos = req.Fotos
	}
	if req.Observacao != "" {
		feedback.Observacao = req.Observacao
	}

	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// MarkRead flags a report as seen by the guardians.
func (s *feedbackServiceImpl) MarkRead(ctx context.Context, id int64) error {
	return s.feedbackRepo.MarkRead(ctx, id)
}

// Delete removes a report. Guardians cannot delete.
func (s *feedbackServiceImpl) Delete(ctx context.Context, id int64, requesterRole models.RoleType) error {
	if requesterRole == models.RoleGuardian {
		return apperrors.NewForbiddenError("Apenas professores e admin podem excluir relatórios.")
	}
	return s.feedbackRepo.Delete(ctx, id)
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
