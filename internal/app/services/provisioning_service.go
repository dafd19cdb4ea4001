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
	"github.com/escolinha/backend/internal/pkg/dberrors"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

const (
	accessCreatedMessage = "Acesso premium criado para o responsável."
	accessReusedMessage  = "Acesso premium já existente foi reutilizado."
)

// ProvisioningService keeps guardian login accounts in sync with student plan
// tiers. Every student create/update goes through here: a premium student
// always ends up with a linked premium guardian user, and a downgrade marks
// the guardian basico without deleting anything.
type ProvisioningService interface {
	CreateStudent(ctx context.Context, student *models.Student, guardianEmail string) (*dto.AccessInfo, error)
	UpdateStudent(ctx context.Context, student *models.Student, guardianEmail string) (*dto.AccessInfo, error)
}

type provisioningServiceImpl struct {
	uow    repositories.UnitOfWork
	logger zerolog.Logger
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(uow repositories.UnitOfWork, logger zerolog.Logger) ProvisioningService {
	return &provisioningServiceImpl{
		uow:    uow,
		logger: logger,
	}
}

// CreateStudent inserts the student and provisions guardian access in one
// transaction. A new student has no link yet, so premium without a guardian
// email fails before any write.
func (s *provisioningServiceImpl) CreateStudent(ctx context.Context, student *models.Student, guardianEmail string) (*dto.AccessInfo, error) {
	if student.Plano == models.PlanPremium && guardianEmail == "" {
		return nil, apperrors.ErrGuardianEmailRequired
	}
	return s.provision(ctx, student, guardianEmail, true)
}

// UpdateStudent rewrites the student and re-runs guardian provisioning in one
// transaction. Premium without a guardian email is allowed only when a link
// already exists.
func (s *provisioningServiceImpl) UpdateStudent(ctx context.Context, student *models.Student, guardianEmail string) (*dto.AccessInfo, error) {
	return s.provision(ctx, student, guardianEmail, false)
}

func (s *provisioningServiceImpl) provision(ctx context.Context, student *models.Student, guardianEmail string, isCreate bool) (*dto.AccessInfo, error) {
	var acesso *dto.AccessInfo

	err := s.uow.Do(ctx, func(ctx context.Context, repos *repositories.TxRepos) error {
		// Premium on update may fall back to an existing link instead of a
		// request email. That check has to happen before the student write.
		var existingLink *models.GuardianLink
		if !isCreate {
			link, err := repos.Links.GetPrimaryByStudent(ctx, student.ID)
			if err != nil && !errors.Is(err, apperrors.ErrGuardianLinkNotFound) {
				return err
			}
			existingLink = link
		}

		if student.Plano == models.PlanPremium && guardianEmail == "" && existingLink == nil {
			return apperrors.ErrGuardianEmailRequired
		}

		if isCreate {
			if err := repos.Students.Create(ctx, student); err != nil {
				return err
			}
		} else {
			if err := repos.Students.Update(ctx, student); err != nil {
				return err
			}
		}

		if student.Plano != models.PlanPremium {
			// Downgrade: the guardian keeps the account and the link, only
			// the plan tier drops.
			if existingLink == nil && !isCreate {
				return nil
			}
			if existingLink != nil {
				return repos.Users.UpdatePlan(ctx, existingLink.ResponsavelID, models.PlanBasic)
			}
			return nil
		}

		info, err := s.ensurePremiumAccess(ctx, repos, student, guardianEmail, existingLink)
		if err != nil {
			return err
		}
		acesso = info
		return nil
	})

	if err != nil {
		return nil, s.mapProvisioningError(err, student, guardianEmail)
	}
	return acesso, nil
}

// ensurePremiumAccess guarantees a premium guardian user linked to the
// student, creating or reusing rows as needed.
func (s *provisioningServiceImpl) ensurePremiumAccess(
	ctx context.Context,
	repos *repositories.TxRepos,
	student *models.Student,
	guardianEmail string,
	existingLink *models.GuardianLink,
) (*dto.AccessInfo, error) {
	if existingLink != nil {
		user := existingLink.Responsavel
		email := user.Email
		if guardianEmail != "" {
			email = guardianEmail
		}
		if err := repos.Users.UpdateEmailAndPlan(ctx, user.ID, email, models.PlanPremium); err != nil {
			return nil, err
		}
		return &dto.AccessInfo{Email: email, Message: accessReusedMessage}, nil
	}

	user, err := repos.Users.GetByEmail(ctx, guardianEmail)
	switch {
	case err == nil:
		if user.Plano != models.PlanPremium {
			if err := repos.Users.UpdatePlan(ctx, user.ID, models.PlanPremium); err != nil {
				return nil, err
			}
		}
		if err := s.linkGuardian(ctx, repos, user.ID, student.ID); err != nil {
			return nil, err
		}
		return &dto.AccessInfo{Email: guardianEmail, Message: accessReusedMessage}, nil

	case errors.Is(err, apperrors.ErrUserNotFound):
		created, err := s.createGuardian(ctx, repos, student, guardianEmail)
		if err != nil {
			return nil, err
		}
		if err := s.linkGuardian(ctx, repos, created.ID, student.ID); err != nil {
			return nil, err
		}
		return &dto.AccessInfo{Email: guardianEmail, Message: accessCreatedMessage}, nil

	default:
		return nil, err
	}
}

func (s *provisioningServiceImpl) createGuardian(
	ctx context.Context,
	repos *repositories.TxRepos,
	student *models.Student,
	guardianEmail string,
) (*models.User, error) {
	password := auth.DerivePassword(helpers.FormatDate(student.DataNascimento))
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	nome := student.Responsavel
	if nome == "" {
		nome = student.Nome
	}

	user := &models.User{
		Nome:  nome,
		Email: guardianEmail,
		Senha: hash,
		Role:  models.RoleGuardian,
		Plano: models.PlanPremium,
	}
	if err := repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", user.ID).
		Str("email", guardianEmail).
		Msg("Guardian account created")

	return user, nil
}

func (s *provisioningServiceImpl) linkGuardian(ctx context.Context, repos *repositories.TxRepos, responsavelID, alunoID int64) error {
	return repos.Links.Create(ctx, &models.GuardianLink{
		ResponsavelID: responsavelID,
		AlunoID:       alunoID,
		Parentesco:    models.DefaultRelationship,
	})
}

// mapProvisioningError keeps the taxonomy stable: validation and not-found
// errors pass through, a unique-email race surfaces as a conflict, and any
// other database failure becomes an opaque provisioning error with the cause
// logged.
func (s *provisioningServiceImpl) mapProvisioningError(err error, student *models.Student, guardianEmail string) error {
	switch {
	case errors.Is(err, apperrors.ErrGuardianEmailRequired),
		errors.Is(err, apperrors.ErrStudentNotFound):
		return err
	case dberrors.IsUniqueViolation(err):
		s.logger.Warn().
			Str("email", guardianEmail).
			Msg("Guardian email already registered by a concurrent request")
		return apperrors.NewConflictError("E-mail do responsável já cadastrado.")
	default:
		s.logger.Error().Err(err).
			Str("student", student.Nome).
			Msg("Provisioning transaction rolled back")
		return apperrors.NewProvisioningError(err)
	}
}
