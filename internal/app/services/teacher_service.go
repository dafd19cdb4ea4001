package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// TeacherService defines the interface for staff operations.
type TeacherService interface {
	GetAllTeachers(ctx context.Context) ([]dto.TeacherResponse, error)
	GetTeacherByID(ctx context.Context, id int64) (*dto.TeacherDetailResponse, error)
	CreateTeacher(ctx context.Context, req *dto.TeacherRequest) (*dto.TeacherPayload, error)
	UpdateTeacher(ctx context.Context, id int64, req *dto.TeacherRequest) (*dto.TeacherPayload, error)
	DeleteTeacher(ctx context.Context, id int64) (*dto.TeacherPayload, error)
}

type teacherServiceImpl struct {
	teacherRepo repositories.ITeacherRepository
	expenseRepo repositories.IExpenseRepository
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(
	teacherRepo repositories.ITeacherRepository,
	expenseRepo repositories.IExpenseRepository,
	logger zerolog.Logger,
) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// GetAllTeachers lists every teacher.
func (s *teacherServiceImpl) GetAllTeachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, dto.NewTeacherResponse(teacher))
	}
	return responses, nil
}

// GetTeacherByID retrieves a teacher together with the expenses tied to them,
// salary payments included.
func (s *teacherServiceImpl) GetTeacherByID(ctx context.Context, id int64) (*dto.TeacherDetailResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.GetByTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	movimentacoes := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		movimentacoes = append(movimentacoes, dto.NewExpenseResponse(expense))
	}

	return &dto.TeacherDetailResponse{
		TeacherResponse: dto.NewTeacherResponse(teacher),
		Movimentacoes:   movimentacoes,
	}, nil
}

// CreateTeacher inserts a new teacher.
func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, req *dto.TeacherRequest) (*dto.TeacherPayload, error) {
	teacher := teacherFromRequest(req)

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("teacherId", teacher.ID).Msg("Teacher created")

	return &dto.TeacherPayload{
		Message: "Professor cadastrado com sucesso.",
		Teacher: dto.NewTeacherResponse(teacher),
	}, nil
}

// UpdateTeacher rewrites a teacher's fields.
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, id int64, req *dto.TeacherRequest) (*dto.TeacherPayload, error) {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	teacher := teacherFromRequest(req)
	teacher.ID = id

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	return &dto.TeacherPayload{
		Message: "Professor atualizado com sucesso",
		Teacher: dto.NewTeacherResponse(teacher),
	}, nil
}

// DeleteTeacher removes a teacher row.
func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, id int64) (*dto.TeacherPayload, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("teacherId", id).Msg("Teacher deleted")

	return &dto.TeacherPayload{
		Message: "Professor deletado com sucesso",
		Teacher: dto.NewTeacherResponse(teacher),
	}, nil
}

func teacherFromRequest(req *dto.TeacherRequest) *models.Teacher {
	status := models.LifecycleStatus(req.Status)
	if status == "" {
		status = models.StatusActive
	}

	return &models.Teacher{
		Nome:            req.Nome,
		DataNascimento:  helpers.ParseDate(req.DataNascimento),
		Telefone:        req.Telefone,
		Endereco:        req.Endereco,
		DataContratacao: helpers.ParseDate(req.DataContratacao),
		NivelEnsino:     req.NivelEnsino,
		Turno:           req.Turno,
		Salario:         req.Salario,
		Status:          status,
	}
}
