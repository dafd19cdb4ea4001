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

// IStudentRepository defines database operations for students.
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePlan(ctx context.Context, id int64, plano models.PlanTier) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles database operations for the alunos table.
type StudentRepository struct {
	db db.DBTX
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db db.DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, nome, data_nascimento, responsavel, telefone, data_matricula,
		valor_mensalidade, serie, turno, observacao, status, plano, foto_url,
		criado_em, atualizado_em`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.Nome,
		&s.DataNascimento,
		&s.Responsavel,
		&s.Telefone,
		&s.DataMatricula,
		&s.ValorMensalidade,
		&s.Serie,
		&s.Turno,
		&s.Observacao,
		&s.Status,
		&s.Plano,
		&s.FotoURL,
		&s.CriadoEm,
		&s.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &s, nil
}

// Create inserts a new student and fills in its generated ID and timestamps.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO alunos (nome, data_nascimento, responsavel, telefone, data_matricula,
			valor_mensalidade, serie, turno, observacao, status, plano, foto_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, criado_em, atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		student.Nome,
		student.DataNascimento,
		student.Responsavel,
		student.Telefone,
		student.DataMatricula,
		student.ValorMensalidade,
		student.Serie,
		student.Turno,
		student.Observacao,
		student.Status,
		student.Plano,
		student.FotoURL,
	).Scan(&student.ID, &student.CriadoEm, &student.AtualizadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM alunos WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all students ordered by name.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM alunos ORDER BY nome`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update rewrites all mutable columns of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE alunos
		SET nome = $1, data_nascimento = $2, responsavel = $3, telefone = $4,
			data_matricula = $5, valor_mensalidade = $6, serie = $7, turno = $8,
			observacao = $9, status = $10, plano = $11, foto_url = $12,
			atualizado_em = NOW()
		WHERE id = $13
		RETURNING atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		student.Nome,
		student.DataNascimento,
		student.Responsavel,
		student.Telefone,
		student.DataMatricula,
		student.ValorMensalidade,
		student.Serie,
		student.Turno,
		student.Observacao,
		student.Status,
		student.Plano,
		student.FotoURL,
		student.ID,
	).Scan(&student.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return err
	}

	return nil
}

// UpdatePlan refreshes the denormalized plan copy on the student row.
func (r *StudentRepository) UpdatePlan(ctx context.Context, id int64, plano models.PlanTier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE alunos SET plano = $1, atualizado_em = NOW() WHERE id = $2`, plano, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student row. Guardian users are never cascade-deleted;
// only the link rows go away via the foreign key.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM alunos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
