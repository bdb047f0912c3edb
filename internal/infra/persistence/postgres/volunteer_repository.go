package postgres

import (
	"context"
	"strings"
	"time"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// volunteerRepository implements the domain's VolunteerRepository interface using GORM.
type volunteerRepository struct {
	db *gorm.DB
}

// NewVolunteerRepository is the constructor for volunteerRepository.
func NewVolunteerRepository(db *gorm.DB) repository.VolunteerRepository {
	return &volunteerRepository{db: db}
}

// CreateVolunteer persists a newly registered volunteer. The unique constraint
// on contact rejects double registrations.
func (repo *volunteerRepository) CreateVolunteer(ctx context.Context, volunteer *entity.Volunteer, passwordHash string) error {
	volunteerM := fromVolunteerDomain(volunteer)
	volunteerM.PasswordHash = passwordHash

	if err := repo.db.WithContext(ctx).Create(volunteerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateVolunteer
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required volunteer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create volunteer")
	}

	volunteer.ID = volunteerM.ID
	volunteer.CreatedAt = volunteerM.CreatedAt
	volunteer.UpdatedAt = volunteerM.UpdatedAt

	return nil
}

// FindVolunteerByID retrieves a volunteer by its unique ID.
func (repo *volunteerRepository) FindVolunteerByID(ctx context.Context, id uuid.UUID) (*entity.Volunteer, error) {
	var volunteerM model.VolunteerModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&volunteerM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVolunteerNotFound
		}

		return nil, errors.Wrap(err, "failed to find volunteer by id")
	}

	return toVolunteerDomain(&volunteerM), nil
}

// UpdateLocation stores the volunteer's latest shared position.
func (repo *volunteerRepository) UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VolunteerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"latitude":   latitude,
			"longitude":  longitude,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update volunteer location")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVolunteerNotFound
	}

	return nil
}

// FindCredentialsByContact retrieves a volunteer and its password hash by the
// registered contact.
func (repo *volunteerRepository) FindCredentialsByContact(ctx context.Context, contact string) (*entity.Volunteer, string, error) {
	var volunteerM model.VolunteerModel
	err := repo.db.WithContext(ctx).
		Where("contact = ?", contact).
		First(&volunteerM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", repository.ErrVolunteerNotFound
		}

		return nil, "", errors.Wrap(err, "failed to find volunteer by contact")
	}

	return toVolunteerDomain(&volunteerM), volunteerM.PasswordHash, nil
}

// TouchLastLogin refreshes the volunteer's last-login timestamp. Availability
// for alert fan-out is derived from this column. A non-empty fcmToken also
// refreshes the registered push token.
func (repo *volunteerRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, fcmToken string) error {
	updates := map[string]any{"last_login_at": time.Now()}
	if fcmToken != "" {
		updates["fcm_token"] = fcmToken
	}

	result := repo.db.WithContext(ctx).
		Model(&model.VolunteerModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to touch last login")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVolunteerNotFound
	}

	return nil
}

// FindWithinRadius performs the proximity query: all volunteers whose last
// shared location lies within radiusMeters of the point. The geography cast
// makes ST_DWithin measure meters along the Earth's surface rather than
// degrees on a flat plane. Rows with NULL coordinates are filtered before the
// PostGIS predicate so the point constructor never sees NULL.
func (repo *volunteerRepository) FindWithinRadius(ctx context.Context, latitude, longitude, radiusMeters float64) ([]*entity.Volunteer, error) {
	var volunteerModels []*model.VolunteerModel
	err := repo.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where(
			"ST_DWithin(ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			longitude, latitude, radiusMeters,
		).
		Find(&volunteerModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find volunteers within radius")
	}

	volunteers := make([]*entity.Volunteer, 0, len(volunteerModels))
	for _, volunteerM := range volunteerModels {
		volunteers = append(volunteers, toVolunteerDomain(volunteerM))
	}

	return volunteers, nil
}

// --- Mapper Functions ---

// toVolunteerDomain converts a GORM VolunteerModel to a domain Volunteer entity.
func toVolunteerDomain(data *model.VolunteerModel) *entity.Volunteer {
	if data == nil {
		return nil
	}

	return &entity.Volunteer{
		ID:             data.ID,
		Name:           data.Name,
		Contact:        data.Contact,
		Skills:         data.Skills,
		Certifications: splitCertifications(data.Certifications),
		Latitude:       data.Latitude,
		Longitude:      data.Longitude,
		FCMToken:       data.FCMToken,
		LastLoginAt:    data.LastLoginAt,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromVolunteerDomain converts a domain Volunteer entity to a GORM VolunteerModel.
// The password hash is not part of the domain entity; callers set it separately.
func fromVolunteerDomain(data *entity.Volunteer) *model.VolunteerModel {
	if data == nil {
		return nil
	}

	return &model.VolunteerModel{
		ID:             data.ID,
		Name:           data.Name,
		Contact:        data.Contact,
		Skills:         data.Skills,
		Certifications: strings.Join(data.Certifications, ","),
		Latitude:       data.Latitude,
		Longitude:      data.Longitude,
		FCMToken:       data.FCMToken,
		LastLoginAt:    data.LastLoginAt,
	}
}

func splitCertifications(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	certifications := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			certifications = append(certifications, trimmed)
		}
	}

	return certifications
}
