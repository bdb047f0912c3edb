// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// requestRepository implements the domain's RequestRepository interface using GORM.
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository is the constructor for requestRepository.
// It returns the repository as a repository.RequestRepository interface, adhering to dependency inversion.
func NewRequestRepository(db *gorm.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// CreateRequest persists a new pending request. The unique index on the exact
// (latitude, longitude) pair does the duplicate-coordinate check, so two
// concurrent submissions for the same point resolve at commit time instead of
// racing through an application-level existence read.
func (repo *requestRepository) CreateRequest(ctx context.Context, request *entity.Request) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateLocation
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required request information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindRequestByID retrieves a request by its unique ID.
func (repo *requestRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var requestM model.RequestModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find request by id")
	}

	return toRequestDomain(&requestM), nil
}

// FindRequestsByStatus retrieves requests in a given lifecycle state, newest first.
func (repo *requestRepository) FindRequestsByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Request, error) {
	var requestModels []*model.RequestModel
	err := repo.db.WithContext(ctx).
		Where("LOWER(status) = ?", strings.ToLower(string(status))).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requestModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find requests by status")
	}

	requests := make([]*entity.Request, 0, len(requestModels))
	for _, requestM := range requestModels {
		requests = append(requests, toRequestDomain(requestM))
	}

	return requests, nil
}

// ClaimRequest transitions pending -> accepted and records the assignee.
// The status predicate rides in the UPDATE itself, so of N concurrent
// claimers exactly one matches the row; the rest observe zero affected rows.
func (repo *requestRepository) ClaimRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND LOWER(status) = ?", id, string(entity.StatusPending)).
		Updates(map[string]any{
			"status":      string(entity.StatusAccepted),
			"assigned_to": volunteerID,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to claim request")
	}

	if result.RowsAffected == 0 {
		return repo.classifyZeroRows(ctx, id)
	}

	return nil
}

// CompleteRequest transitions accepted -> completed, conditional on the row
// still being accepted and assigned to volunteerID at write time.
func (repo *requestRepository) CompleteRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	return repo.transitionAssigned(ctx, id, volunteerID, entity.StatusCompleted)
}

// EscalateRequest transitions accepted -> emergency, conditional on the row
// still being accepted and assigned to volunteerID at write time.
func (repo *requestRepository) EscalateRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	return repo.transitionAssigned(ctx, id, volunteerID, entity.StatusEmergency)
}

// transitionAssigned performs the shared accepted -> terminal conditional
// update for completion and escalation.
func (repo *requestRepository) transitionAssigned(ctx context.Context, id, volunteerID uuid.UUID, target entity.Status) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND LOWER(status) = ? AND assigned_to = ?", id, string(entity.StatusAccepted), volunteerID).
		Updates(map[string]any{
			"status":     string(target),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to transition request")
	}

	if result.RowsAffected == 0 {
		return repo.classifyZeroRows(ctx, id)
	}

	return nil
}

// classifyZeroRows distinguishes "row is gone" from "row exists but the
// transition predicate no longer holds" after a conditional update matched
// nothing. The follow-up read is advisory only; the update already decided
// the race.
func (repo *requestRepository) classifyZeroRows(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to inspect request after conditional update")
	}

	if count == 0 {
		return repository.ErrRequestNotFound
	}

	return repository.ErrStatusConflict
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toRequestDomain converts a GORM RequestModel to a domain Request entity.
func toRequestDomain(data *model.RequestModel) *entity.Request {
	if data == nil {
		return nil
	}

	return &entity.Request{
		ID:            data.ID,
		RequesterName: data.RequesterName,
		Contact:       data.Contact,
		Category:      entity.Category(data.Category),
		Urgency:       entity.Urgency(data.Urgency),
		Description:   data.Description,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		ImageURL:      data.ImageURL,
		Status:        entity.Status(strings.ToLower(data.Status)),
		AssignedTo:    data.AssignedTo,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromRequestDomain converts a domain Request entity to a GORM RequestModel for persistence.
func fromRequestDomain(data *entity.Request) *model.RequestModel {
	if data == nil {
		return nil
	}

	return &model.RequestModel{
		ID:            data.ID,
		RequesterName: data.RequesterName,
		Contact:       data.Contact,
		Category:      string(data.Category),
		Urgency:       string(data.Urgency),
		Description:   data.Description,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		ImageURL:      data.ImageURL,
		Status:        string(data.Status),
		AssignedTo:    data.AssignedTo,
	}
}
