package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// alertRepository implements the domain's AlertRepository interface using GORM.
// Alert and recipient writes are only ever issued on a *gorm.DB obtained from
// the transaction manager, so atomicity is decided by the caller's transaction.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

// CreateAlert persists the alert row.
func (repo *alertRepository) CreateAlert(ctx context.Context, alert *entity.Alert) error {
	alertM := fromAlertDomain(alert)

	if err := repo.db.WithContext(ctx).Create(alertM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "alert references a missing request")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert")
	}

	alert.ID = alertM.ID
	alert.CreatedAt = alertM.CreatedAt

	return nil
}

// BatchCreateRecipients persists all recipient rows for an alert in one
// INSERT. An empty set is a programming error upstream, not a storage
// condition, and is rejected before touching the database.
func (repo *alertRepository) BatchCreateRecipients(ctx context.Context, recipients []*entity.AlertRecipient) error {
	if len(recipients) == 0 {
		return repository.ErrNoRecipients
	}

	recipientModels := make([]*model.AlertRecipientModel, 0, len(recipients))
	for _, recipient := range recipients {
		recipientModels = append(recipientModels, fromAlertRecipientDomain(recipient))
	}

	if err := repo.db.WithContext(ctx).Create(recipientModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "recipient references a missing alert or volunteer")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert recipients")
	}

	for i, recipientM := range recipientModels {
		recipients[i].ID = recipientM.ID
	}

	return nil
}

// FindAlertByID retrieves an alert with its recipients.
func (repo *alertRepository) FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	var alertM model.AlertModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&alertM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert by id")
	}

	var recipientModels []*model.AlertRecipientModel
	if err := repo.db.WithContext(ctx).
		Where("alert_id = ?", id).
		Find(&recipientModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load alert recipients")
	}

	alert := toAlertDomain(&alertM)
	alert.Recipients = make([]entity.AlertRecipient, 0, len(recipientModels))
	for _, recipientM := range recipientModels {
		alert.Recipients = append(alert.Recipients, *toAlertRecipientDomain(recipientM))
	}

	return alert, nil
}

// --- Mapper Functions ---

// toAlertDomain converts a GORM AlertModel to a domain Alert entity.
func toAlertDomain(data *model.AlertModel) *entity.Alert {
	if data == nil {
		return nil
	}

	return &entity.Alert{
		ID:           data.ID,
		RequestID:    data.RequestID,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		Message:      data.Message,
		OriginatedAt: data.OriginatedAt,
		CreatedAt:    data.CreatedAt,
	}
}

// fromAlertDomain converts a domain Alert entity to a GORM AlertModel.
// Recipients are persisted separately via BatchCreateRecipients.
func fromAlertDomain(data *entity.Alert) *model.AlertModel {
	if data == nil {
		return nil
	}

	return &model.AlertModel{
		ID:           data.ID,
		RequestID:    data.RequestID,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		Message:      data.Message,
		OriginatedAt: data.OriginatedAt,
	}
}

// toAlertRecipientDomain converts a GORM AlertRecipientModel to a domain AlertRecipient.
func toAlertRecipientDomain(data *model.AlertRecipientModel) *entity.AlertRecipient {
	if data == nil {
		return nil
	}

	return &entity.AlertRecipient{
		ID:          data.ID,
		AlertID:     data.AlertID,
		VolunteerID: data.VolunteerID,
		Name:        data.Name,
		Contact:     data.Contact,
	}
}

// fromAlertRecipientDomain converts a domain AlertRecipient to a GORM AlertRecipientModel.
func fromAlertRecipientDomain(data *entity.AlertRecipient) *model.AlertRecipientModel {
	if data == nil {
		return nil
	}

	return &model.AlertRecipientModel{
		ID:          data.ID,
		AlertID:     data.AlertID,
		VolunteerID: data.VolunteerID,
		Name:        data.Name,
		Contact:     data.Contact,
	}
}
