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

// IFeedbackRepository defines database operations for pedagogical reports.
type IFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	GetByStudent(ctx context.Context, alunoID int64) ([]*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// FeedbackRepository handles database operations for the feedbacks table.
// The avaliacao maps and the fotos list live in JSONB columns; pgx marshals
// them through encoding/json.
type FeedbackRepository struct {
	db db.DBTX
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db db.DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback report.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedbacks (aluno_id, autor_id, bimestre, avaliacao_pedagogica,
			avaliacao_psico, fotos, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, lido_pelos_pais, criado_em, atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		feedback.AlunoID,
		feedback.AutorID,
		feedback.Bimestre,
		feedback.AvaliacaoPedagogica,
		feedback.AvaliacaoPsico,
		feedback.Fotos,
		feedback.Observacao,
	).Scan(&feedback.ID, &feedback.LidoPelosPais, &feedback.CriadoEm, &feedback.AtualizadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a feedback report by ID.
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := `
		SELECT id, aluno_id, autor_id, bimestre, avaliacao_pedagogica,
			avaliacao_psico, fotos, observacao, lido_pelos_pais, criado_em, atualizado_em
		FROM feedbacks
		WHERE id = $1
	`

	var f models.Feedback
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.AlunoID,
		&f.AutorID,
		&f.Bimestre,
		&f.AvaliacaoPedagogica,
		&f.AvaliacaoPsico,
		&f.Fotos,
		&f.Observacao,
		&f.LidoPelosPais,
		&f.CriadoEm,
		&f.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	return &f, nil
}

// GetByStudent retrieves a student's reports, newest first, with the author's
// name joined in.
func (r *FeedbackRepository) GetByStudent(ctx context.Context, alunoID int64) ([]*models.Feedback, error) {
	query := `
		SELECT f.id, f.aluno_id, f.autor_id, f.bimestre, f.avaliacao_pedagogica,
			f.avaliacao_psico, f.fotos, f.observacao, f.lido_pelos_pais,
			f.criado_em, f.atualizado_em, u.nome
		FROM feedbacks f
		JOIN users u ON u.id = f.autor_id
		WHERE f.aluno_id = $1
		ORDER BY f.criado_em DESC
	`

	rows, err := r.db.Query(ctx, query, alunoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.AlunoID,
			&f.AutorID,
			&f.Bimestre,
			&f.AvaliacaoPedagogica,
			&f.AvaliacaoPsico,
			&f.Fotos,
			&f.Observacao,
			&f.LidoPelosPais,
			&f.CriadoEm,
			&f.AtualizadoEm,
			&f.AutorNome,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// Update rewrites the editable fields of a report.
func (r *FeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	query := `
		UPDATE feedbacks
		SET bimestre = $1, avaliacao_pedagogica = $2, avaliacao_psico = $3,
			fotos = $4, observacao = $5, atualizado_em = NOW()
		WHERE id = $6
		RETURNING atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		feedback.Bimestre,
		feedback.AvaliacaoPedagogica,
		feedback.AvaliacaoPsico,
		feedback.Fotos,
		feedback.Observacao,
		feedback.ID,
	).Scan(&feedback.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrFeedbackNotFound
		}
		return err
	}

	return nil
}

// MarkRead flags a report as seen by the guardians.
func (r *FeedbackRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE feedbacks SET lido_pelos_pais = TRUE, atualizado_em = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}

// Delete removes a report.
func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
