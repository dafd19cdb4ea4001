package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/apperrors"
	"github.com/escolinha/backend/internal/pkg/auth"
)

const premiumOnlyMessage = "Seu plano é o Básico. O acesso ao aplicativo é exclusivo para assinantes Premium."

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues a JWT. Guardians on the basic plan
// are rejected with an authorization failure, but only after their password
// checked out, so the error never doubles as a credential oracle.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Senha, req.Senha) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role == models.RoleGuardian && user.Plano != models.PlanPremium {
		s.logger.Info().
			Int64("userId", user.ID).
			Str("plano", string(user.Plano)).
			Msg("Login blocked for non-premium guardian")
		return nil, apperrors.NewCustomError(apperrors.ErrPremiumRequired, premiumOnlyMessage)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastAccess(ctx, user.ID); err != nil {
		// The login itself succeeded; a failed timestamp should not break it.
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last access")
	}

	return &dto.LoginResponse{
		Message: "Login realizado com sucesso",
		Token:   token,
		User: dto.UserInfo{
			ID:    user.ID,
			Nome:  user.Nome,
			Role:  string(user.Role),
			Plano: string(user.Plano),
		},
	}, nil
}
