package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// StudentService defines the interface for student operations.
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentPayload, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentPayload, error)
	DeleteStudent(ctx context.Context, id int64) (*dto.StudentPayload, error)
}

type studentServiceImpl struct {
	studentRepo  repositories.IStudentRepository
	provisioning ProvisioningService
	logger       zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	provisioning ProvisioningService,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo:  studentRepo,
		provisioning: provisioning,
		logger:       logger,
	}
}

// GetAllStudents lists every student.
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}
	return responses, nil
}

// GetStudentByID retrieves a single student.
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// CreateStudent inserts a student and provisions guardian access when the
// requested plan is premium.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentPayload, error) {
	student := studentFromRequest(req)

	acesso, err := s.provisioning.CreateStudent(ctx, student, req.EmailResponsavel)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("plano", string(student.Plano)).
		Msg("Student created")

	return &dto.StudentPayload{
		Message: "Aluno cadastrado com sucesso.",
		Student: dto.NewStudentResponse(student),
		Acesso:  acesso,
	}, nil
}

// UpdateStudent rewrites a student and re-syncs guardian access.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentPayload, error) {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student := studentFromRequest(req)
	student.ID = id
	if student.Responsavel == "" {
		student.Responsavel = existing.Responsavel
	}
	if student.FotoURL == nil {
		student.FotoURL = existing.FotoURL
	}

	acesso, err := s.provisioning.UpdateStudent(ctx, student, req.EmailResponsavel)
	if err != nil {
		return nil, err
	}

	return &dto.StudentPayload{
		Message: "Aluno atualizado com sucesso",
		Student: dto.NewStudentResponse(student),
		Acesso:  acesso,
	}, nil
}

// DeleteStudent removes the student row. Guardian accounts stay untouched.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (*dto.StudentPayload, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", id).Msg("Student deleted")

	return &dto.StudentPayload{
		Message: "Aluno deletado com sucesso",
		Student: dto.NewStudentResponse(student),
	}, nil
}

func studentFromRequest(req *dto.StudentRequest) *models.Student {
	status := models.LifecycleStatus(req.Status)
	if status == "" {
		status = models.StatusActive
	}
	plano := models.PlanTier(req.Plano)
	if plano == "" {
		plano = models.PlanBasic
	}

	student := &models.Student{
		Nome:             req.Nome,
		DataNascimento:   helpers.ParseDate(req.DataNascimento),
		Responsavel:      req.Responsavel,
		Telefone:         req.Telefone,
		DataMatricula:    helpers.ParseDate(req.DataMatricula),
		ValorMensalidade: req.ValorMensalidade,
		Serie:            req.Serie,
		Turno:            req.Turno,
		Observacao:       req.Observacao,
		Status:           status,
		Plano:            plano,
	}
	if req.FotoURL != "" {
		student.FotoURL = &req.FotoURL
	}
	return student
}
