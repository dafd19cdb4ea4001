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

// ILinkRepository defines database operations for guardian-student links.
type ILinkRepository interface {
	Create(ctx context.Context, link *models.GuardianLink) error
	GetPrimaryByStudent(ctx context.Context, alunoID int64) (*models.GuardianLink, error)
	Exists(ctx context.Context, responsavelID, alunoID int64) (bool, error)
}

// LinkRepository handles database operations for the responsaveis_alunos table.
type LinkRepository struct {
	db db.DBTX
}

// NewLinkRepository creates a new LinkRepository.
func NewLinkRepository(db db.DBTX) *LinkRepository {
	return &LinkRepository{db: db}
}

// Create inserts a guardian-student link. The (responsavel_id, aluno_id) pair
// is unique; on conflict the insert is a no-op so repeated provisioning never
// duplicates links.
func (r *LinkRepository) Create(ctx context.Context, link *models.GuardianLink) error {
	query := `
		INSERT INTO responsaveis_alunos (responsavel_id, aluno_id, parentesco)
		VALUES ($1, $2, $3)
		ON CONFLICT (responsavel_id, aluno_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, link.ResponsavelID, link.AlunoID, link.Parentesco)
	if err != nil {
		return fmt.Errorf("error creating guardian link: %w", err)
	}

	return nil
}

// GetPrimaryByStudent retrieves the authoritative link for a student together
// with the linked guardian user. When a student carries more than one link,
// the lowest link id wins.
func (r *LinkRepository) GetPrimaryByStudent(ctx context.Context, alunoID int64) (*models.GuardianLink, error) {
	query := `
		SELECT ra.id, ra.responsavel_id, ra.aluno_id, ra.parentesco, ra.criado_em,
			u.id, u.nome, u.email, u.senha, u.role, u.plano, u.ultimo_acesso,
			u.criado_em, u.atualizado_em
		FROM responsaveis_alunos ra
		JOIN users u ON u.id = ra.responsavel_id
		WHERE ra.aluno_id = $1
		ORDER BY ra.id
		LIMIT 1
	`

	var link models.GuardianLink
	var u models.User
	err := r.db.QueryRow(ctx, query, alunoID).Scan(
		&link.ID,
		&link.ResponsavelID,
		&link.AlunoID,
		&link.Parentesco,
		&link.CriadoEm,
		&u.ID,
		&u.Nome,
		&u.Email,
		&u.Senha,
		&u.Role,
		&u.Plano,
		&u.UltimoAcesso,
		&u.CriadoEm,
		&u.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuardianLinkNotFound
		}
		return nil, fmt.Errorf("error retrieving guardian link: %w", err)
	}

	link.Responsavel = &u
	return &link, nil
}

// Exists checks whether a guardian is linked to a student.
func (r *LinkRepository) Exists(ctx context.Context, responsavelID, alunoID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM responsaveis_alunos
			WHERE responsavel_id = $1 AND aluno_id = $2
		)`, responsavelID, alunoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking guardian link: %w", err)
	}
	return exists, nil
}
