package impl

import (
	"context"
	"log/slog"
	"time"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
)

type requestService struct {
	logger      *slog.Logger
	requestRepo repository.RequestRepository
}

// NewRequestService creates the request intake use case instance.
func NewRequestService(logger *slog.Logger, requestRepo repository.RequestRepository) usecase.RequestUsecase {
	return &requestService{
		logger:      logger,
		requestRepo: requestRepo,
	}
}

// CreateRequest persists a new pending request. The exact-coordinate
// uniqueness rule is enforced by the storage layer's unique index, so two
// concurrent submissions for the same point cannot both slip through an
// application-level existence check.
func (s *requestService) CreateRequest(ctx context.Context, input *usecase.CreateRequestInput) (*entity.Request, error) {
	request := &entity.Request{
		ID:            uuid.New(),
		RequesterName: input.RequesterName,
		Contact:       input.Contact,
		Category:      input.Category,
		Urgency:       input.Urgency,
		Description:   input.Description,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		ImageURL:      input.ImageURL,
		Status:        entity.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.requestRepo.CreateRequest(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicateLocation) {
			return nil, domainerrors.ErrDuplicateLocation
		}

		return nil, errors.Wrap(err, "failed to create request")
	}

	s.logger.Info("request created",
		slog.String("request_id", request.ID.String()),
		slog.String("category", string(request.Category)),
		slog.String("urgency", string(request.Urgency)),
	)

	return request, nil
}

// GetRequest retrieves a single request.
func (s *requestService) GetRequest(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find request")
	}

	return request, nil
}

// ListRequestsByStatus retrieves requests in a lifecycle state, newest first.
func (s *requestService) ListRequestsByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Request, error) {
	return s.requestRepo.FindRequestsByStatus(ctx, status, limit, offset)
}
