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

// ITeacherRepository defines database operations for staff.
type ITeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository handles database operations for the professores table.
type TeacherRepository struct {
	db db.DBTX
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(db db.DBTX) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `id, nome, data_nascimento, telefone, endereco, data_contratacao,
		nivel_ensino, turno, salario, status, criado_em, atualizado_em`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(
		&t.ID,
		&t.Nome,
		&t.DataNascimento,
		&t.Telefone,
		&t.Endereco,
		&t.DataContratacao,
		&t.NivelEnsino,
		&t.Turno,
		&t.Salario,
		&t.Status,
		&t.CriadoEm,
		&t.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return &t, nil
}

// Create inserts a new teacher and fills in its generated ID and timestamps.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO professores (nome, data_nascimento, telefone, endereco,
			data_contratacao, nivel_ensino, turno, salario, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, criado_em, atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		teacher.Nome,
		teacher.DataNascimento,
		teacher.Telefone,
		teacher.Endereco,
		teacher.DataContratacao,
		teacher.NivelEnsino,
		teacher.Turno,
		teacher.Salario,
		teacher.Status,
	).Scan(&teacher.ID, &teacher.CriadoEm, &teacher.AtualizadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM professores WHERE id = $1`
	return scanTeacher(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all teachers ordered by name.
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM professores ORDER BY nome`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// Update rewrites all mutable columns of a teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE professores
		SET nome = $1, data_nascimento = $2, telefone = $3, endereco = $4,
			data_contratacao = $5, nivel_ensino = $6, turno = $7, salario = $8,
			status = $9, atualizado_em = NOW()
		WHERE id = $10
		RETURNING atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		teacher.Nome,
		teacher.DataNascimento,
		teacher.Telefone,
		teacher.Endereco,
		teacher.DataContratacao,
		teacher.NivelEnsino,
		teacher.Turno,
		teacher.Salario,
		teacher.Status,
		teacher.ID,
	).Scan(&teacher.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTeacherNotFound
		}
		return err
	}

	return nil
}

// Delete removes a teacher row.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM professores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
