package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/db"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// IDashboardRepository defines the aggregate queries behind the reporting
// endpoints.
type IDashboardRepository interface {
	CountActive(ctx context.Context, table string) (int64, error)
	ActiveStudentsByShift(ctx context.Context) (map[string]int64, error)
	Birthdays(ctx context.Context, table string) ([]dto.Birthday, error)
	ProjectedTuition(ctx context.Context) (float64, error)
	ProjectedSalaries(ctx context.Context) (float64, error)
	EnrolledInCurrentMonth(ctx context.Context) (int64, error)
	MonthlyTotals(ctx context.Context, month, year int) (receitas, despesas float64, err error)
	Defaulters(ctx context.Context, month, year int) ([]dto.Defaulter, error)
}

// DashboardRepository runs the aggregate queries for the dashboard, the
// monthly report and the defaulter listing.
type DashboardRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db db.DBTX) *DashboardRepository {
	return &DashboardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountActive counts status='ativo' rows in alunos or professores.
func (r *DashboardRepository) CountActive(ctx context.Context, table string) (int64, error) {
	query, args, err := r.sb.
		Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"status": "ativo"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting active rows in %s: %w", table, err)
	}
	return count, nil
}

// ActiveStudentsByShift groups active students by turno.
func (r *DashboardRepository) ActiveStudentsByShift(ctx context.Context) (map[string]int64, error) {
	query, args, err := r.sb.
		Select("turno", "COUNT(*)").
		From("alunos").
		Where(squirrel.Eq{"status": "ativo"}).
		GroupBy("turno").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building shift query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byShift := make(map[string]int64)
	for rows.Next() {
		var turno string
		var count int64
		if err := rows.Scan(&turno, &count); err != nil {
			return nil, err
		}
		byShift[turno] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return byShift, nil
}

// Birthdays lists active people from the given table whose birth month is the
// current month, ordered by day of month.
func (r *DashboardRepository) Birthdays(ctx context.Context, table string) ([]dto.Birthday, error) {
	query, args, err := r.sb.
		Select("nome", "data_nascimento").
		From(table).
		Where(squirrel.Eq{"status": "ativo"}).
		Where("EXTRACT(MONTH FROM data_nascimento) = EXTRACT(MONTH FROM CURRENT_DATE)").
		OrderBy("EXTRACT(DAY FROM data_nascimento)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building birthday query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var birthdays []dto.Birthday
	for rows.Next() {
		var nome string
		var nascimento *time.Time
		if err := rows.Scan(&nome, &nascimento); err != nil {
			return nil, err
		}
		birthdays = append(birthdays, dto.Birthday{
			Nome:           nome,
			DataNascimento: helpers.FormatDate(nascimento),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return birthdays, nil
}

// ProjectedTuition sums the registered monthly fee of every active student.
func (r *DashboardRepository) ProjectedTuition(ctx context.Context) (float64, error) {
	return r.sumActive(ctx, "alunos", "valor_mensalidade")
}

// ProjectedSalaries sums the salary of every active teacher.
func (r *DashboardRepository) ProjectedSalaries(ctx context.Context) (float64, error) {
	return r.sumActive(ctx, "professores", "salario")
}

func (r *DashboardRepository) sumActive(ctx context.Context, table, column string) (float64, error) {
	query, args, err := r.sb.
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).
		From(table).
		Where(squirrel.Eq{"status": "ativo"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sum query: %w", err)
	}

	var total float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing %s.%s: %w", table, column, err)
	}
	return total, nil
}

// EnrolledInCurrentMonth counts active students whose enrollment date falls in
// the current calendar month.
func (r *DashboardRepository) EnrolledInCurrentMonth(ctx context.Context) (int64, error) {
	query, args, err := r.sb.
		Select("COUNT(*)").
		From("alunos").
		Where(squirrel.Eq{"status": "ativo"}).
		Where("EXTRACT(MONTH FROM data_matricula) = EXTRACT(MONTH FROM CURRENT_DATE)").
		Where("EXTRACT(YEAR FROM data_matricula) = EXTRACT(YEAR FROM CURRENT_DATE)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building enrollment query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting current enrollments: %w", err)
	}
	return count, nil
}

// MonthlyTotals sums tuition income and expenses paid in the given month.
func (r *DashboardRepository) MonthlyTotals(ctx context.Context, month, year int) (float64, float64, error) {
	var receitas, despesas float64

	query, args, err := r.sb.
		Select("COALESCE(SUM(valor), 0)").
		From("mensalidades").
		Where("EXTRACT(MONTH FROM data_pagamento) = ?", month).
		Where("EXTRACT(YEAR FROM data_pagamento) = ?", year).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("error building income query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&receitas); err != nil {
		return 0, 0, fmt.Errorf("error summing monthly income: %w", err)
	}

	query, args, err = r.sb.
		Select("COALESCE(SUM(valor), 0)").
		From("despesas").
		Where("EXTRACT(MONTH FROM data_pagamento) = ?", month).
		Where("EXTRACT(YEAR FROM data_pagamento) = ?", year).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("error building expense query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&despesas); err != nil {
		return 0, 0, fmt.Errorf("error summing monthly expenses: %w", err)
	}

	return receitas, despesas, nil
}

// Defaulters lists active students enrolled by the given month with no tuition
// payment recorded in it.
func (r *DashboardRepository) Defaulters(ctx context.Context, month, year int) ([]dto.Defaulter, error) {
	query := `
		SELECT a.id, a.nome, a.valor_mensalidade
		FROM alunos a
		WHERE a.status = 'ativo'
			AND a.data_matricula <= make_date($2::int, $1::int, 1)
			AND NOT EXISTS (
				SELECT 1
				FROM mensalidades m
				WHERE m.aluno_id = a.id
					AND EXTRACT(MONTH FROM m.data_pagamento) = $1
					AND EXTRACT(YEAR FROM m.data_pagamento) = $2
			)
		ORDER BY a.nome
	`

	rows, err := r.db.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defaulters []dto.Defaulter
	for rows.Next() {
		var d dto.Defaulter
		if err := rows.Scan(&d.ID, &d.Nome, &d.ValorMensalidade); err != nil {
			return nil, err
		}
		defaulters = append(defaulters, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return defaulters, nil
}
