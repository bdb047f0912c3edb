package usecase

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRequestInput carries a validated help-request submission.
type CreateRequestInput struct {
	RequesterName string
	Contact       string
	Category      entity.Category
	Urgency       entity.Urgency
	Description   string
	Latitude      float64
	Longitude     float64
	ImageURL      string
}

// RequestUsecase covers request intake and read access.
type RequestUsecase interface {
	// CreateRequest persists a new pending request. Two requests can never
	// share the identical coordinate pair.
	CreateRequest(ctx context.Context, input *CreateRequestInput) (*entity.Request, error)

	// GetRequest retrieves a single request.
	GetRequest(ctx context.Context, id uuid.UUID) (*entity.Request, error)

	// ListRequestsByStatus retrieves requests in a lifecycle state, newest first.
	ListRequestsByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Request, error)
}
