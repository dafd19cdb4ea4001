package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/db"
	"github.com/escolinha/backend/internal/pkg/apperrors"
)

// ILedgerRepository defines database operations for cash-flow entries.
type ILedgerRepository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error)
	GetAll(ctx context.Context) ([]*models.LedgerEntry, error)
	Update(ctx context.Context, entry *models.LedgerEntry) error
	Delete(ctx context.Context, id int64) error
	SumBalance(ctx context.Context, start, end time.Time) (float64, error)
}

// LedgerRepository handles database operations for the lancamentos table.
type LedgerRepository struct {
	db db.DBTX
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const ledgerColumns = `id, tipo, categoria, descricao, valor, data_pagamento,
		aluno_id, professor_id, criado_em`

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var l models.LedgerEntry
	err := row.Scan(
		&l.ID,
		&l.Tipo,
		&l.Categoria,
		&l.Descricao,
		&l.Valor,
		&l.DataPagamento,
		&l.AlunoID,
		&l.ProfessorID,
		&l.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLedgerEntryNotFound
		}
		return nil, fmt.Errorf("error retrieving ledger entry: %w", err)
	}
	return &l, nil
}

// Create inserts a ledger entry.
func (r *LedgerRepository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO lancamentos (tipo, categoria, descricao, valor, data_pagamento,
			aluno_id, professor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, criado_em
	`

	err := r.db.QueryRow(ctx, query,
		entry.Tipo,
		entry.Categoria,
		entry.Descricao,
		entry.Valor,
		entry.DataPagamento,
		entry.AlunoID,
		entry.ProfessorID,
	).Scan(&entry.ID, &entry.CriadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a ledger entry by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM lancamentos WHERE id = $1`
	return scanLedgerEntry(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all ledger entries, most recent payment first.
func (r *LedgerRepository) GetAll(ctx context.Context) ([]*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM lancamentos ORDER BY data_pagamento DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		l, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Update rewrites all mutable columns of a ledger entry.
func (r *LedgerRepository) Update(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		UPDATE lancamentos
		SET tipo = $1, categoria = $2, descricao = $3, valor = $4,
			data_pagamento = $5, aluno_id = $6, professor_id = $7
		WHERE id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		entry.Tipo,
		entry.Categoria,
		entry.Descricao,
		entry.Valor,
		entry.DataPagamento,
		entry.AlunoID,
		entry.ProfessorID,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLedgerEntryNotFound
	}

	return nil
}

// Delete removes a ledger entry.
func (r *LedgerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lancamentos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLedgerEntryNotFound
	}
	return nil
}

// SumBalance computes receitas minus despesas over a date window, inclusive.
func (r *LedgerRepository) SumBalance(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN tipo = 'receita' THEN valor ELSE -valor END), 0)
		FROM lancamentos
		WHERE data_pagamento >= $1 AND data_pagamento <= $2
	`

	var saldo float64
	if err := r.db.QueryRow(ctx, query, start, end).Scan(&saldo); err != nil {
		return 0, fmt.Errorf("error computing ledger balance: %w", err)
	}
	return saldo, nil
}
