package impl

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"lifeline/config"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/mocks"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// lifecycleFixture bundles the mocked collaborators behind a lifecycleService.
type lifecycleFixture struct {
	requestRepo   *mocks.RequestRepository
	volunteerRepo *mocks.VolunteerRepository
	alertRepo     *mocks.AlertRepository
	txManager     *mocks.TransactionManager
	messenger     *mocks.Messenger
	pushSvc       *mocks.PushService
	publisher     *mocks.EventPublisher

	svc usecase.LifecycleUsecase
}

func newLifecycleFixture(t *testing.T, withPush bool) *lifecycleFixture {
	t.Helper()

	f := &lifecycleFixture{
		requestRepo:   &mocks.RequestRepository{},
		volunteerRepo: &mocks.VolunteerRepository{},
		alertRepo:     &mocks.AlertRepository{},
		txManager:     &mocks.TransactionManager{},
		messenger:     &mocks.Messenger{},
		publisher:     &mocks.EventPublisher{},
	}

	factory := &mocks.RepositoryFactory{}
	factory.On("NewAlertRepository").Return(f.alertRepo).Maybe()
	f.txManager.Factory = factory

	cfg := &config.Config{
		Alerting: &config.AlertingConfig{
			RadiusMeters:       10000,
			AuthorityEmail:     "authority@example.org",
			DefaultCountryCode: "91",
			AvailabilityWindow: 24 * time.Hour,
		},
	}

	var pushSvc *mocks.PushService
	if withPush {
		pushSvc = &mocks.PushService{}
		f.pushSvc = pushSvc
	}

	logger := slog.New(slog.DiscardHandler)
	if withPush {
		f.svc = NewLifecycleService(logger, f.requestRepo, f.volunteerRepo, f.txManager, f.messenger, pushSvc, f.publisher, cfg)
	} else {
		f.svc = NewLifecycleService(logger, f.requestRepo, f.volunteerRepo, f.txManager, f.messenger, nil, f.publisher, cfg)
	}

	return f
}

func acceptedRequest(volunteerID uuid.UUID) *entity.Request {
	return &entity.Request{
		ID:            uuid.New(),
		RequesterName: "Asha",
		Contact:       "98765 43210",
		Category:      entity.CategoryMedical,
		Urgency:       entity.UrgencyCritical,
		Description:   "trapped after flooding",
		Latitude:      19.0760,
		Longitude:     72.8777,
		Status:        entity.StatusAccepted,
		AssignedTo:    &volunteerID,
	}
}

func nearbyVolunteer(contact string) *entity.Volunteer {
	lat, lon := 19.0900, 72.8900
	lastLogin := time.Now().Add(-time.Hour)

	return &entity.Volunteer{
		ID:          uuid.New(),
		Name:        "Ravi",
		Contact:     contact,
		Latitude:    &lat,
		Longitude:   &lon,
		LastLoginAt: &lastLogin,
	}
}

func TestClaim_Success(t *testing.T) {
	f := newLifecycleFixture(t, false)
	requestID := uuid.New()
	volunteerID := uuid.New()

	claimed := acceptedRequest(volunteerID)
	claimed.ID = requestID

	f.requestRepo.On("ClaimRequest", mock.Anything, requestID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, requestID).Return(claimed, nil)

	request, err := f.svc.Claim(context.Background(), requestID, volunteerID)
	require.NoError(t, err)
	assert.True(t, request.Status.Is(entity.StatusAccepted))
	assert.True(t, request.IsAssignedTo(volunteerID))
	f.requestRepo.AssertExpectations(t)
}

func TestClaim_LostRace(t *testing.T) {
	f := newLifecycleFixture(t, false)
	requestID := uuid.New()

	f.requestRepo.On("ClaimRequest", mock.Anything, requestID, mock.Anything).
		Return(repository.ErrStatusConflict)

	request, err := f.svc.Claim(context.Background(), requestID, uuid.New())
	assert.Nil(t, request)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyClaimed)
}

func TestClaim_NotFound(t *testing.T) {
	f := newLifecycleFixture(t, false)
	requestID := uuid.New()

	f.requestRepo.On("ClaimRequest", mock.Anything, requestID, mock.Anything).
		Return(repository.ErrRequestNotFound)

	request, err := f.svc.Claim(context.Background(), requestID, uuid.New())
	assert.Nil(t, request)
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}

func TestComplete_SendsRequesterSMS(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusCompleted

	f.requestRepo.On("CompleteRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	// "98765 43210" has no leading +, so the default country code is prefixed.
	f.messenger.On("SendSMS", mock.Anything, "+919876543210", mock.Anything).Return(nil)

	result, err := f.svc.Complete(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	assert.NoError(t, result.Notification)
	assert.True(t, result.Request.Status.Is(entity.StatusCompleted))
	f.messenger.AssertExpectations(t)
}

func TestComplete_InvalidContactIsReportedNotFatal(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusCompleted
	request.Contact = "someone@example.org"

	f.requestRepo.On("CompleteRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)

	result, err := f.svc.Complete(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	require.Error(t, result.Notification)

	var appErr domainerrors.AppError
	require.ErrorAs(t, result.Notification, &appErr)
	assert.Equal(t, "INVALID_CONTACT", appErr.ErrorCode())
	assert.True(t, result.Request.Status.Is(entity.StatusCompleted))
	f.messenger.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestComplete_SMSFailureIsReportedNotFatal(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusCompleted

	f.requestRepo.On("CompleteRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("gateway timeout"))

	result, err := f.svc.Complete(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, result.Notification, &appErr)
	assert.Equal(t, "NOTIFICATION_FAILED", appErr.ErrorCode())
	assert.True(t, result.Request.Status.Is(entity.StatusCompleted))
}

func TestComplete_NotEligible(t *testing.T) {
	f := newLifecycleFixture(t, false)
	requestID := uuid.New()

	f.requestRepo.On("CompleteRequest", mock.Anything, requestID, mock.Anything).
		Return(repository.ErrStatusConflict)

	result, err := f.svc.Complete(context.Background(), requestID, uuid.New())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrNotEligible)
}

func TestEscalate_NoVolunteersInRange(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusEmergency

	f.requestRepo.On("EscalateRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendEmail", mock.Anything, "authority@example.org", mock.Anything, mock.Anything).Return(nil)
	f.volunteerRepo.On("FindWithinRadius", mock.Anything, request.Latitude, request.Longitude, 10000.0).
		Return([]*entity.Volunteer{}, nil)
	f.publisher.On("PublishEscalationEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Escalate(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	assert.Nil(t, result.Alert)
	assert.Zero(t, result.NotifiedCount)

	var appErr domainerrors.AppError
	require.ErrorAs(t, result.Warning, &appErr)
	assert.Equal(t, "NO_RECIPIENTS_FOUND", appErr.ErrorCode())
	assert.True(t, result.Request.Status.Is(entity.StatusEmergency))
	f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestEscalate_PersistsAlertAndFansOut(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusEmergency

	near := nearbyVolunteer("+91 98123 45678")
	second := nearbyVolunteer("9899 9999 99")

	f.requestRepo.On("EscalateRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendEmail", mock.Anything, "authority@example.org", mock.Anything, mock.Anything).Return(nil)
	f.volunteerRepo.On("FindWithinRadius", mock.Anything, request.Latitude, request.Longitude, 10000.0).
		Return([]*entity.Volunteer{near, second}, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("BatchCreateRecipients", mock.Anything, mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, "+919812345678", mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, "+919899999999", mock.Anything).Return(nil)
	f.publisher.On("PublishEscalationEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Escalate(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	require.NotNil(t, result.Alert)
	assert.Equal(t, request.ID, result.Alert.RequestID)
	assert.Len(t, result.Alert.Recipients, 2)
	assert.Equal(t, near.Name, result.Alert.Recipients[0].Name)
	assert.Equal(t, 2, result.NotifiedCount)
	assert.Zero(t, result.FailedCount)
	assert.NoError(t, result.Warning)
	f.alertRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestEscalate_StaleVolunteersGetNoAlert(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusEmergency

	active := nearbyVolunteer("+919812345678")
	stale := nearbyVolunteer("+919899999999")
	staleLogin := time.Now().Add(-48 * time.Hour)
	stale.LastLoginAt = &staleLogin

	f.requestRepo.On("EscalateRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.volunteerRepo.On("FindWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Volunteer{active, stale}, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("BatchCreateRecipients", mock.Anything, mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, "+919812345678", mock.Anything).Return(nil)
	f.publisher.On("PublishEscalationEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Escalate(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	require.NotNil(t, result.Alert)
	assert.Len(t, result.Alert.Recipients, 1)
	assert.Equal(t, active.ID, result.Alert.Recipients[0].VolunteerID)
	assert.Equal(t, 1, result.NotifiedCount)
	f.messenger.AssertNotCalled(t, "SendSMS", mock.Anything, "+919899999999", mock.Anything)
}

func TestEscalate_PartialDeliveryFailure(t *testing.T) {
	f := newLifecycleFixture(t, false)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusEmergency

	reachable := nearbyVolunteer("+919812345678")
	unreachable := nearbyVolunteer("+919899999999")

	f.requestRepo.On("EscalateRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.volunteerRepo.On("FindWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Volunteer{reachable, unreachable}, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("BatchCreateRecipients", mock.Anything, mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, "+919812345678", mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, "+919899999999", mock.Anything).
		Return(errors.New("number unreachable"))
	f.publisher.On("PublishEscalationEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Escalate(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, 1, result.FailedCount)

	var appErr domainerrors.AppError
	require.ErrorAs(t, result.Warning, &appErr)
	assert.Equal(t, "PARTIAL_DELIVERY_FAILURE", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "1 of 2")
}

func TestEscalate_PushRescuesFailedSMS(t *testing.T) {
	f := newLifecycleFixture(t, true)
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	request.Status = entity.StatusEmergency

	withToken := nearbyVolunteer("+919812345678")
	withToken.FCMToken = "device-token-1"

	f.requestRepo.On("EscalateRequest", mock.Anything, request.ID, volunteerID).Return(nil)
	f.requestRepo.On("FindRequestByID", mock.Anything, request.ID).Return(request, nil)
	f.messenger.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.volunteerRepo.On("FindWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Volunteer{withToken}, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	f.alertRepo.On("BatchCreateRecipients", mock.Anything, mock.Anything).Return(nil)
	f.messenger.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("gateway down"))
	f.pushSvc.On("SendSingleNotification", mock.Anything, "device-token-1", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
	f.publisher.On("PublishEscalationEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Escalate(context.Background(), request.ID, volunteerID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Zero(t, result.FailedCount)
	assert.NoError(t, result.Warning)
	f.pushSvc.AssertExpectations(t)
}

func TestEscalate_NotEligible(t *testing.T) {
	f := newLifecycleFixture(t, false)
	requestID := uuid.New()

	f.requestRepo.On("EscalateRequest", mock.Anything, requestID, mock.Anything).
		Return(repository.ErrRequestNotFound)

	result, err := f.svc.Escalate(context.Background(), requestID, uuid.New())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrNotEligible)
}

func TestAlertBody_IncludesDistanceWhenLocated(t *testing.T) {
	volunteerID := uuid.New()
	request := acceptedRequest(volunteerID)
	volunteer := nearbyVolunteer("+919812345678")

	body := alertBody(request, volunteer)
	assert.Contains(t, body, "EMERGENCY medical")
	assert.Contains(t, body, "km away")
	assert.Contains(t, body, fmt.Sprintf("https://maps.google.com/?q=%f,%f", request.Latitude, request.Longitude))

	// A volunteer who never shared a position gets the same alert minus distance.
	noLocation := &entity.Volunteer{ID: uuid.New(), Contact: "+919812345678"}
	assert.NotContains(t, alertBody(request, noLocation), "km away")
}
