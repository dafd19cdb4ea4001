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

// IUserRepository defines database operations for login principals.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePlan(ctx context.Context, id int64, plano models.PlanTier) error
	UpdateEmailAndPlan(ctx context.Context, id int64, email string, plano models.PlanTier) error
	UpdateLastAccess(ctx context.Context, id int64) error
}

// UserRepository handles database operations for the users table.
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, nome, email, senha, role, plano, ultimo_acesso, criado_em, atualizado_em`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
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
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user and fills in its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (nome, email, senha, role, plano)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em, atualizado_em
	`

	err := r.db.QueryRow(ctx, query,
		user.Nome, user.Email, user.Senha, user.Role, user.Plano,
	).Scan(&user.ID, &user.CriadoEm, &user.AtualizadoEm)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// EmailExists checks if an email is already taken.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdatePlan changes a user's plan tier.
func (r *UserRepository) UpdatePlan(ctx context.Context, id int64, plano models.PlanTier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET plano = $1, atualizado_em = NOW() WHERE id = $2`, plano, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateEmailAndPlan rewrites a user's email and plan tier together.
func (r *UserRepository) UpdateEmailAndPlan(ctx context.Context, id int64, email string, plano models.PlanTier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email = $1, plano = $2, atualizado_em = NOW() WHERE id = $3`,
		email, plano, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastAccess stamps the last successful login time.
func (r *UserRepository) UpdateLastAccess(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET ultimo_acesso = NOW() WHERE id = $1`, id)
	return err
}
