package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
)

// DashboardService defines the reporting operations.
type DashboardService interface {
	GetDashboard(ctx context.Context, start, end *time.Time) (*dto.DashboardResponse, error)
	GetMonthlyReport(ctx context.Context, month, year int) (*dto.MonthlyReportResponse, error)
	GetDefaulters(ctx context.Context, month, year int) (*dto.DefaultersResponse, error)
}

type dashboardServiceImpl struct {
	dashboardRepo repositories.IDashboardRepository
	ledgerRepo    repositories.ILedgerRepository
	logger        zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardRepo repositories.IDashboardRepository,
	ledgerRepo repositories.ILedgerRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		ledgerRepo:    ledgerRepo,
		logger:        logger,
	}
}

// GetDashboard aggregates the numbers for the admin home screen. The ledger
// balance is restricted to the given window when both bounds are present;
// everything else reads the current state.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, start, end *time.Time) (*dto.DashboardResponse, error) {
	alunosAtivos, err := s.dashboardRepo.CountActive(ctx, "alunos")
	if err != nil {
		return nil, err
	}

	professoresAtivos, err := s.dashboardRepo.CountActive(ctx, "professores")
	if err != nil {
		return nil, err
	}

	porTurno, err := s.dashboardRepo.ActiveStudentsByShift(ctx)
	if err != nil {
		return nil, err
	}

	// An open window sums the whole ledger.
	saldoStart := time.Time{}
	saldoEnd := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if start != nil {
		saldoStart = *start
	}
	if end != nil {
		saldoEnd = *end
	}
	saldo, err := s.ledgerRepo.SumBalance(ctx, saldoStart, saldoEnd)
	if err != nil {
		return nil, err
	}

	aniversariantes, err := s.dashboardRepo.Birthdays(ctx, "alunos")
	if err != nil {
		return nil, err
	}

	professoresAniversariantes, err := s.dashboardRepo.Birthdays(ctx, "professores")
	if err != nil {
		return nil, err
	}

	previstoMensalidades, err := s.dashboardRepo.ProjectedTuition(ctx)
	if err != nil {
		return nil, err
	}

	previstoSalarios, err := s.dashboardRepo.ProjectedSalaries(ctx)
	if err != nil {
		return nil, err
	}

	matriculados, err := s.dashboardRepo.EnrolledInCurrentMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		AlunosAtivos:              alunosAtivos,
		ProfessoresAtivos:         professoresAtivos,
		AlunosPorTurno:            porTurno,
		SaldoCaixa:                saldo,
		Aniversariantes:           aniversariantes,
		ProfessoresAniversariante: professoresAniversariantes,
		SaldoPrevistoMensalidades: previstoMensalidades,
		SaldoPrevistoSalarios:     previstoSalarios,
		MatriculadosMesAtual:      matriculados,
	}, nil
}

// GetMonthlyReport sums income and expenses for a month alongside the active
// headcounts.
func (s *dashboardServiceImpl) GetMonthlyReport(ctx context.Context, month, year int) (*dto.MonthlyReportResponse, error) {
	receitas, despesas, err := s.dashboardRepo.MonthlyTotals(ctx, month, year)
	if err != nil {
		return nil, err
	}

	alunos, err := s.dashboardRepo.CountActive(ctx, "alunos")
	if err != nil {
		return nil, err
	}

	professores, err := s.dashboardRepo.CountActive(ctx, "professores")
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyReportResponse{
		TotalReceitas:     receitas,
		TotalDespesas:     despesas,
		Saldo:             receitas - despesas,
		AlunosStatus:      alunos,
		ProfessoresStatus: professores,
	}, nil
}

// GetDefaulters lists active students enrolled by the given month that have no
// tuition payment recorded in it.
func (s *dashboardServiceImpl) GetDefaulters(ctx context.Context, month, year int) (*dto.DefaultersResponse, error) {
	defaulters, err := s.dashboardRepo.Defaulters(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if defaulters == nil {
		defaulters = []dto.Defaulter{}
	}
	return &dto.DefaultersResponse{Inadimplentes: defaulters}, nil
}
