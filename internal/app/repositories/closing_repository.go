package repositories

import (
	"context"
	"fmt"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/db"
)

// IClosingRepository defines database operations for month-end snapshots.
type IClosingRepository interface {
	Upsert(ctx context.Context, closing *models.MonthlyClosing) error
}

// ClosingRepository handles database operations for the fechamentos_mensais table.
type ClosingRepository struct {
	db db.DBTX
}

// NewClosingRepository creates a new ClosingRepository.
func NewClosingRepository(db db.DBTX) *ClosingRepository {
	return &ClosingRepository{db: db}
}

// Upsert writes the month's balance snapshot. Closing the same month again
// overwrites the previous snapshot instead of failing on (ano, mes).
func (r *ClosingRepository) Upsert(ctx context.Context, closing *models.MonthlyClosing) error {
	query := `
		INSERT INTO fechamentos_mensais (mes, ano, saldo_final, usuario, data_fechamento)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ano, mes) DO UPDATE
		SET saldo_final = EXCLUDED.saldo_final,
			usuario = EXCLUDED.usuario,
			data_fechamento = EXCLUDED.data_fechamento
		RETURNING id, data_fechamento
	`

	err := r.db.QueryRow(ctx, query,
		closing.Mes, closing.Ano, closing.SaldoFinal, closing.Usuario,
	).Scan(&closing.ID, &closing.DataFechamento)
	if err != nil {
		return fmt.Errorf("error saving monthly closing: %w", err)
	}

	return nil
}
