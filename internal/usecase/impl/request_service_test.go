package impl

import (
	"context"
	"log/slog"
	"testing"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/mocks"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequestService(repo *mocks.RequestRepository) usecase.RequestUsecase {
	return NewRequestService(slog.New(slog.DiscardHandler), repo)
}

func TestCreateRequest_StartsPending(t *testing.T) {
	repo := &mocks.RequestRepository{}
	repo.On("CreateRequest", mock.Anything, mock.Anything).Return(nil)

	svc := newRequestService(repo)
	request, err := svc.CreateRequest(context.Background(), &usecase.CreateRequestInput{
		RequesterName: "Asha",
		Contact:       "9876543210",
		Category:      entity.CategoryRescue,
		Urgency:       entity.UrgencyHigh,
		Latitude:      19.0760,
		Longitude:     72.8777,
	})

	require.NoError(t, err)
	assert.True(t, request.Status.Is(entity.StatusPending))
	assert.Nil(t, request.AssignedTo)
	assert.NotEqual(t, uuid.Nil, request.ID)
}

func TestCreateRequest_DuplicateLocation(t *testing.T) {
	repo := &mocks.RequestRepository{}
	repo.On("CreateRequest", mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateLocation)

	svc := newRequestService(repo)
	request, err := svc.CreateRequest(context.Background(), &usecase.CreateRequestInput{
		RequesterName: "Asha",
		Contact:       "9876543210",
		Category:      entity.CategoryRescue,
		Urgency:       entity.UrgencyHigh,
		Latitude:      19.0760,
		Longitude:     72.8777,
	})

	assert.Nil(t, request)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateLocation)
}

func TestGetRequest_NotFound(t *testing.T) {
	repo := &mocks.RequestRepository{}
	id := uuid.New()
	repo.On("FindRequestByID", mock.Anything, id).
		Return(nil, repository.ErrRequestNotFound)

	svc := newRequestService(repo)
	request, err := svc.GetRequest(context.Background(), id)

	assert.Nil(t, request)
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}

func TestListRequestsByStatus_PassesThrough(t *testing.T) {
	repo := &mocks.RequestRepository{}
	expected := []*entity.Request{{ID: uuid.New(), Status: entity.StatusPending}}
	repo.On("FindRequestsByStatus", mock.Anything, entity.StatusPending, 50, 0).
		Return(expected, nil)

	svc := newRequestService(repo)
	requests, err := svc.ListRequestsByStatus(context.Background(), entity.StatusPending, 50, 0)

	require.NoError(t, err)
	assert.Equal(t, expected, requests)
}
