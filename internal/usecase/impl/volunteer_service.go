package impl

import (
	"context"
	"log/slog"
	"time"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
)

type volunteerService struct {
	logger        *slog.Logger
	volunteerRepo repository.VolunteerRepository
	hasher        service.PasswordHasher
	tokenSvc      service.TokenService
}

// NewVolunteerService creates the volunteer use case instance.
func NewVolunteerService(
	logger *slog.Logger,
	volunteerRepo repository.VolunteerRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
) usecase.VolunteerUsecase {
	return &volunteerService{
		logger:        logger,
		volunteerRepo: volunteerRepo,
		hasher:        hasher,
		tokenSvc:      tokenSvc,
	}
}

// Register creates a new volunteer account. The location stays absent until
// the volunteer shares a position for the first time.
func (s *volunteerService) Register(ctx context.Context, input *usecase.RegisterVolunteerInput) (*entity.Volunteer, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	volunteer := &entity.Volunteer{
		ID:             uuid.New(),
		Name:           input.Name,
		Contact:        input.Contact,
		Skills:         input.Skills,
		Certifications: input.Certifications,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.volunteerRepo.CreateVolunteer(ctx, volunteer, passwordHash); err != nil {
		if errors.Is(err, repository.ErrDuplicateVolunteer) {
			return nil, domainerrors.ErrVolunteerAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create volunteer")
	}

	s.logger.Info("volunteer registered", slog.String("volunteer_id", volunteer.ID.String()))

	return volunteer, nil
}

// Login verifies the contact/password pair and issues an access token. The
// last-login stamp it writes is what the escalation fan-out reads to decide
// which nearby volunteers count as available.
func (s *volunteerService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginResult, error) {
	volunteer, passwordHash, err := s.volunteerRepo.FindCredentialsByContact(ctx, input.Contact)
	if err != nil {
		if errors.Is(err, repository.ErrVolunteerNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up volunteer credentials")
	}

	if !s.hasher.Check(input.Password, passwordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := s.volunteerRepo.TouchLastLogin(ctx, volunteer.ID, input.FCMToken); err != nil {
		return nil, errors.Wrap(err, "failed to record login")
	}

	now := time.Now()
	volunteer.LastLoginAt = &now
	if input.FCMToken != "" {
		volunteer.FCMToken = input.FCMToken
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(volunteer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	s.logger.Info("volunteer logged in", slog.String("volunteer_id", volunteer.ID.String()))

	return &usecase.LoginResult{
		Volunteer:   volunteer,
		AccessToken: accessToken,
	}, nil
}

// UpdateLocation refreshes the volunteer's last shared position.
func (s *volunteerService) UpdateLocation(ctx context.Context, volunteerID uuid.UUID, latitude, longitude float64) (*entity.Volunteer, error) {
	if err := s.volunteerRepo.UpdateLocation(ctx, volunteerID, latitude, longitude); err != nil {
		if errors.Is(err, repository.ErrVolunteerNotFound) {
			return nil, domainerrors.ErrVolunteerNotFound
		}

		return nil, errors.Wrap(err, "failed to update volunteer location")
	}

	volunteer, err := s.volunteerRepo.FindVolunteerByID(ctx, volunteerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload volunteer")
	}

	return volunteer, nil
}

// GetVolunteer retrieves a volunteer's profile.
func (s *volunteerService) GetVolunteer(ctx context.Context, id uuid.UUID) (*entity.Volunteer, error) {
	volunteer, err := s.volunteerRepo.FindVolunteerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVolunteerNotFound) {
			return nil, domainerrors.ErrVolunteerNotFound
		}

		return nil, errors.Wrap(err, "failed to find volunteer")
	}

	return volunteer, nil
}
