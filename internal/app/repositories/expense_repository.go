package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/db"
	"github.com/escolinha/backend/internal/pkg/apperrors"
)

// IExpenseRepository defines database operations for expenses.
type IExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id int64) (*models.Expense, error)
	GetByTeacher(ctx context.Context, professorID int64) ([]*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id int64) error
}

// ExpenseRepository handles database operations for the despesas table.
type ExpenseRepository struct {
	db db.DBTX
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db db.DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, professor_id, valor, data_pagamento, mes_referencia,
		ano_referencia, categoria, descricao, criado_em, atualizado_em`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ID,
		&e.ProfessorID,
		&e.Valor,
		&e.DataPagamento,
		&e.MesReferencia,
		&e.AnoReferencia,
		&e.Categoria,
		&e.Descricao,
		&e.CriadoEm,
		&e.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("error retrieving expense: %w", err)
	}
	return &e, nil
}

// Create inserts an expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO despesas (professor_id, valor, data_pagamento, mes_referencia,
			ano_referencia, categoria, descricao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, criado_em, atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		expense.ProfessorID,
		expense.Valor,
		expense.DataPagamento,
		expense.MesReferencia,
		expense.AnoReferencia,
		expense.Categoria,
		expense.Descricao,
	).Scan(&expense.ID, &expense.CriadoEm, &expense.AtualizadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM despesas WHERE id = $1`
	return scanExpense(r.db.QueryRow(ctx, query, id))
}

// GetByTeacher retrieves all expenses tied to a teacher, newest period first.
func (r *ExpenseRepository) GetByTeacher(ctx context.Context, professorID int64) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM despesas
		WHERE professor_id = $1
		ORDER BY ano_referencia DESC, mes_referencia DESC
	`

	rows, err := r.db.Query(ctx, query, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// Update rewrites all mutable columns of an expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE despesas
		SET professor_id = $1, valor = $2, data_pagamento = $3, mes_referencia = $4,
			ano_referencia = $5, categoria = $6, descricao = $7, atualizado_em = NOW()
		WHERE id = $8
		RETURNING atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		expense.ProfessorID,
		expense.Valor,
		expense.DataPagamento,
		expense.MesReferencia,
		expense.AnoReferencia,
		expense.Categoria,
		expense.Descricao,
		expense.ID,
	).Scan(&expense.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrExpenseNotFound
		}
		return err
	}

	return nil
}

// Delete removes an expense row.
func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM despesas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}
