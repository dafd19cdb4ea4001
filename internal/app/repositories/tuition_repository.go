package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/db"
)

// ITuitionRepository defines database operations for tuition payments.
type ITuitionRepository interface {
	Create(ctx context.Context, tuition *models.Tuition) error
	GetByStudent(ctx context.Context, alunoID int64) ([]*models.Tuition, error)
}

// TuitionRepository handles database operations for the mensalidades table.
type TuitionRepository struct {
	db db.DBTX
}

// NewTuitionRepository creates a new TuitionRepository.
func NewTuitionRepository(db db.DBTX) *TuitionRepository {
	return &TuitionRepository{db: db}
}

func scanTuition(row pgx.Row) (*models.Tuition, error) {
	var t models.Tuition
	err := row.Scan(
		&t.ID,
		&t.AlunoID,
		&t.Valor,
		&t.DataPagamento,
		&t.MesReferencia,
		&t.AnoReferencia,
		&t.CriadoEm,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving tuition: %w", err)
	}
	return &t, nil
}

// Create inserts a tuition payment.
func (r *TuitionRepository) Create(ctx context.Context, tuition *models.Tuition) error {
	query := `
		INSERT INTO mensalidades (aluno_id, valor, data_pagamento, mes_referencia, ano_referencia)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em
	`

	err := r.db.QueryRow(ctx, query,
		tuition.AlunoID,
		tuition.Valor,
		tuition.DataPagamento,
		tuition.MesReferencia,
		tuition.AnoReferencia,
	).Scan(&tuition.ID, &tuition.CriadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByStudent retrieves all payments for a student, newest period first.
func (r *TuitionRepository) GetByStudent(ctx context.Context, alunoID int64) ([]*models.Tuition, error) {
	query := `
		SELECT id, aluno_id, valor, data_pagamento, mes_referencia, ano_referencia, criado_em
		FROM mensalidades
		WHERE aluno_id = $1
		ORDER BY ano_referencia DESC, mes_referencia DESC
	`

	rows, err := r.db.Query(ctx, query, alunoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tuitions []*models.Tuition
	for rows.Next() {
		t, err := scanTuition(rows)
		if err != nil {
			return nil, err
		}
		tuitions = append(tuitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tuitions, nil
}
