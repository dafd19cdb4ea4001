package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/apperrors"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// FinanceService defines the interface for tuition, expense and ledger
// operations.
type FinanceService interface {
	GetTuitionByStudent(ctx context.Context, alunoID int64) ([]dto.TuitionResponse, error)
	CreateTuition(ctx context.Context, req *dto.TuitionRequest) (*dto.TuitionResponse, error)

	GetExpenseByID(ctx context.Context, id int64) (*dto.ExpenseResponse, error)
	GetExpensesByTeacher(ctx context.Context, professorID int64) ([]dto.ExpenseResponse, error)
	CreateExpense(ctx context.Context, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id int64, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id int64) error

	GetAllLedgerEntries(ctx context.Context) ([]dto.LedgerEntryResponse, error)
	GetLedgerEntryByID(ctx context.Context, id int64) (*dto.LedgerEntryResponse, error)
	CreateLedgerEntry(ctx context.Context, req *dto.LedgerEntryRequest) (*dto.LedgerEntryResponse, error)
	UpdateLedgerEntry(ctx context.Context, id int64, req *dto.LedgerEntryRequest) (*dto.LedgerEntryResponse, error)
	DeleteLedgerEntry(ctx context.Context, id int64) error

	CloseMonth(ctx context.Context, req *dto.ClosingRequest, usuario string) (*dto.ClosingPayload, error)
}

type financeServiceImpl struct {
	tuitionRepo repositories.ITuitionRepository
	expenseRepo repositories.IExpenseRepository
	ledgerRepo  repositories.ILedgerRepository
	closingRepo repositories.IClosingRepository
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(
	tuitionRepo repositories.ITuitionRepository,
	expenseRepo repositories.IExpenseRepository,
	ledgerRepo repositories.ILedgerRepository,
	closingRepo repositories.IClosingRepository,
	studentRepo repositories.IStudentRepository,
	logger zerolog.Logger,
) FinanceService {
	return &financeServiceImpl{
		tuitionRepo: tuitionRepo,
		expenseRepo: expenseRepo,
		ledgerRepo:  ledgerRepo,
		closingRepo: closingRepo,
		studentRepo: studentRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetTuitionByStudent lists a student's tuition payments.
func (s *financeServiceImpl) GetTuitionByStudent(ctx context.Context, alunoID int64) ([]dto.TuitionResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, alunoID); err != nil {
		return nil, err
	}

	tuitions, err := s.tuitionRepo.GetByStudent(ctx, alunoID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TuitionResponse, 0, len(tuitions))
	for _, t := range tuitions {
		responses = append(responses, dto.NewTuitionResponse(t))
	}
	return responses, nil
}

// CreateTuition records a tuition payment.
func (s *financeServiceImpl) CreateTuition(ctx context.Context, req *dto.TuitionRequest) (*dto.TuitionResponse, error) {
	paymentDate := helpers.ParseDate(req.DataPagamento)
	if paymentDate == nil {
		return nil, apperrors.NewBadRequestError("Data de pagamento inválida.")
	}

	if _, err := s.studentRepo.GetByID(ctx, req.AlunoID); err != nil {
		return nil, err
	}

	tuition := &models.Tuition{
		AlunoID:       req.AlunoID,
		Valor:         req.Valor,
		DataPagamento: *paymentDate,
		MesReferencia: req.MesReferencia,
		AnoReferencia: req.AnoReferencia,
	}
	if err := s.tuitionRepo.Create(ctx, tuition); err != nil {
		return nil, err
	}

	resp := dto.NewTuitionResponse(tuition)
	return &resp, nil
}

// GetExpenseByID retrieves an expense.
func (s *financeServiceImpl) GetExpenseByID(ctx context.Context, id int64) (*dto.ExpenseResponse, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

// GetExpensesByTeacher lists the expenses tied to a teacher.
func (s *financeServiceImpl) GetExpensesByTeacher(ctx context.Context, professorID int64) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.GetByTeacher(ctx, professorID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, dto.NewExpenseResponse(e))
	}
	return responses, nil
}

// CreateExpense records an outgoing payment.
func (s *financeServiceImpl) CreateExpense(ctx context.Context, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := expenseFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

// UpdateExpense rewrites an expense.
func (s *financeServiceImpl) UpdateExpense(ctx context.Context, id int64, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := expenseFromRequest(req)
	if err != nil {
		return nil, err
	}
	expense.ID = id

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

// DeleteExpense removes an expense.
func (s *financeServiceImpl) DeleteExpense(ctx context.Context, id int64) error {
	return s.expenseRepo.Delete(ctx, id)
}

// GetAllLedgerEntries lists the cash-flow ledger.
func (s *financeServiceImpl) GetAllLedgerEntries(ctx context.Context) ([]dto.LedgerEntryResponse, error) {
	entries, err := s.ledgerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewLedgerEntryResponse(entry))
	}
	return responses, nil
}

// GetLedgerEntryByID retrieves a ledger entry.
func (s *financeServiceImpl) GetLedgerEntryByID(ctx context.Context, id int64) (*dto.LedgerEntryResponse, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewLedgerEntryResponse(entry)
	return &resp, nil
}

// CreateLedgerEntry records a cash movement.
func (s *financeServiceImpl) CreateLedgerEntry(ctx context.Context, req *dto.LedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	entry, err := ledgerEntryFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	resp := dto.NewLedgerEntryResponse(entry)
	return &resp, nil
}

// UpdateLedgerEntry rewrites a ledger entry.
func (s *financeServiceImpl) UpdateLedgerEntry(ctx context.Context, id int64, req *dto.LedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	entry, err := ledgerEntryFromRequest(req)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := s.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	resp := dto.NewLedgerEntryResponse(entry)
	return &resp, nil
}

// DeleteLedgerEntry removes a ledger entry.
func (s *financeServiceImpl) DeleteLedgerEntry(ctx context.Context, id int64) error {
	return s.ledgerRepo.Delete(ctx, id)
}

// CloseMonth computes the ledger balance for a month and snapshots it into
// fechamentos_mensais. Closing the same month twice overwrites the snapshot.
func (s *financeServiceImpl) CloseMonth(ctx context.Context, req *dto.ClosingRequest, usuario string) (*dto.ClosingPayload, error) {
	now := s.now()
	mes, ano := req.Mes, req.Ano
	if mes == 0 {
		mes = int(now.Month())
	}
	if ano == 0 {
		ano = now.Year()
	}
	if mes < 1 || mes > 12 {
		return nil, apperrors.ErrInvalidPeriod
	}

	start, end := helpers.MonthBounds(ano, mes)
	saldo, err := s.ledgerRepo.SumBalance(ctx, start, end)
	if err != nil {
		return nil, err
	}

	closing := &models.MonthlyClosing{
		Mes:        mes,
		Ano:        ano,
		SaldoFinal: saldo,
		Usuario:    usuario,
	}
	if err := s.closingRepo.Upsert(ctx, closing); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("mes", mes).
		Int("ano", ano).
		Float64("saldo", saldo).
		Msg("Monthly closing recorded")

	return &dto.ClosingPayload{
		Sucesso:    true,
		Fechamento: *closing,
	}, nil
}

func expenseFromRequest(req *dto.ExpenseRequest) (*models.Expense, error) {
	paymentDate := helpers.ParseDate(req.DataPagamento)
	if paymentDate == nil {
		return nil, apperrors.NewBadRequestError("Data de pagamento inválida.")
	}

	return &models.Expense{
		ProfessorID:   req.ProfessorID,
		Valor:         req.Valor,
		DataPagamento: *paymentDate,
		MesReferencia: req.MesReferencia,
		AnoReferencia: req.AnoReferencia,
		Categoria:     req.Categoria,
		Descricao:     req.Descricao,
	}, nil
}

func ledgerEntryFromRequest(req *dto.LedgerEntryRequest) (*models.LedgerEntry, error) {
	paymentDate := helpers.ParseDate(req.DataPagamento)
	if paymentDate == nil {
		return nil, apperrors.NewBadRequestError("Data de pagamento inválida.")
	}

	return &models.LedgerEntry{
		Tipo:          models.EntryType(req.Tipo),
		Categoria:     req.Categoria,
		Descricao:     req.Descricao,
		Valor:         req.Valor,
		DataPagamento: *paymentDate,
		AlunoID:       req.AlunoID,
		ProfessorID:   req.ProfessorID,
	}, nil
}
