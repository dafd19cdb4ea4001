package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	appRepos "github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@escolinha.app"

// CreateDefaultData creates the default admin account when the users table is
// still empty, so a fresh deployment can log in and register everything else
// through the API.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	var finalErr error

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Debug().Msg("Default admin account already present, skipping seed")
		return finalErr
	}

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin123"
		lgr.Warn().Msg("ADMIN_DEFAULT_PASSWORD not set, seeding admin with the default password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.User{
		Nome:  "Administrador",
		Email: defaultAdminEmail,
		Senha: hash,
		Role:  models.RoleAdmin,
		Plano: models.PlanPremium,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	}

	return finalErr
}
