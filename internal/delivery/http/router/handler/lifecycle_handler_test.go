package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/validator"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLifecycleUsecase lets each test script the usecase outcome directly.
type stubLifecycleUsecase struct {
	claim    func(ctx context.Context, requestID, volunteerID uuid.UUID) (*entity.Request, error)
	complete func(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.CompletionResult, error)
	escalate func(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.EscalationResult, error)
}

func (s *stubLifecycleUsecase) Claim(ctx context.Context, requestID, volunteerID uuid.UUID) (*entity.Request, error) {
	return s.claim(ctx, requestID, volunteerID)
}

func (s *stubLifecycleUsecase) Complete(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.CompletionResult, error) {
	return s.complete(ctx, requestID, volunteerID)
}

func (s *stubLifecycleUsecase) Escalate(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.EscalationResult, error) {
	return s.escalate(ctx, requestID, volunteerID)
}

func lifecycleTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/requests/lifecycle/complete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.VolunteerIDKey, uuid.New())

	return c, rec
}

func TestLifecycleHandler_CompleteSuccess(t *testing.T) {
	requestID := uuid.New()
	stub := &stubLifecycleUsecase{
		complete: func(_ context.Context, gotRequestID, _ uuid.UUID) (*usecase.CompletionResult, error) {
			assert.Equal(t, requestID, gotRequestID)

			return &usecase.CompletionResult{
				Request: &entity.Request{ID: gotRequestID, Status: entity.StatusCompleted},
			}, nil
		},
	}
	h := NewLifecycleHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := lifecycleTestContext(t, `{"request_id":"`+requestID.String()+`"}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			NotificationSent bool `json:"notification_sent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.True(t, envelope.Data.NotificationSent)
}

func TestLifecycleHandler_CompleteNotificationFailure(t *testing.T) {
	requestID := uuid.New()
	stub := &stubLifecycleUsecase{
		complete: func(_ context.Context, gotRequestID, _ uuid.UUID) (*usecase.CompletionResult, error) {
			return &usecase.CompletionResult{
				Request:      &entity.Request{ID: gotRequestID, Status: entity.StatusCompleted},
				Notification: domainerrors.ErrNotificationFailed.WithDetails("gateway timeout"),
			}, nil
		},
	}
	h := NewLifecycleHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := lifecycleTestContext(t, `{"request_id":"`+requestID.String()+`"}`)
	require.NoError(t, h.Complete(c))

	// The transition is committed; the envelope reports the notification failure.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope struct {
		Data struct {
			Request struct {
				Status string `json:"status"`
			} `json:"request"`
		} `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOTIFICATION_FAILED", envelope.Error.Code)
	assert.Equal(t, "completed", envelope.Data.Request.Status)
}

func TestLifecycleHandler_EscalateNoRecipients(t *testing.T) {
	requestID := uuid.New()
	stub := &stubLifecycleUsecase{
		escalate: func(_ context.Context, gotRequestID, _ uuid.UUID) (*usecase.EscalationResult, error) {
			return &usecase.EscalationResult{
				Request: &entity.Request{ID: gotRequestID, Status: entity.StatusEmergency},
				Warning: domainerrors.ErrNoRecipientsFound,
			}, nil
		},
	}
	h := NewLifecycleHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := lifecycleTestContext(t, `{"request_id":"`+requestID.String()+`"}`)
	require.NoError(t, h.Escalate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NO_RECIPIENTS_FOUND", envelope.Error.Code)
}

func TestLifecycleHandler_EscalatePartialDelivery(t *testing.T) {
	requestID := uuid.New()
	alertID := uuid.New()
	stub := &stubLifecycleUsecase{
		escalate: func(_ context.Context, gotRequestID, _ uuid.UUID) (*usecase.EscalationResult, error) {
			return &usecase.EscalationResult{
				Request:       &entity.Request{ID: gotRequestID, Status: entity.StatusEmergency},
				Alert:         &entity.Alert{ID: alertID, RequestID: gotRequestID},
				NotifiedCount: 3,
				FailedCount:   1,
				Warning:       domainerrors.ErrPartialDeliveryFailure.WithDetails("1 of 4 recipient notifications failed"),
			}, nil
		},
	}
	h := NewLifecycleHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := lifecycleTestContext(t, `{"request_id":"`+requestID.String()+`"}`)
	require.NoError(t, h.Escalate(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			AlertID       string `json:"alert_id"`
			NotifiedCount int    `json:"notified_count"`
			FailedCount   int    `json:"failed_count"`
		} `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, alertID.String(), envelope.Data.AlertID)
	assert.Equal(t, 3, envelope.Data.NotifiedCount)
	assert.Equal(t, 1, envelope.Data.FailedCount)
	assert.Equal(t, "PARTIAL_DELIVERY_FAILURE", envelope.Error.Code)
}

func TestLifecycleHandler_RejectsMalformedRequestID(t *testing.T) {
	h := NewLifecycleHandler(&stubLifecycleUsecase{}, slog.New(slog.DiscardHandler))

	c, rec := lifecycleTestContext(t, `{"request_id":"not-a-uuid"}`)
	require.NoError(t, h.Claim(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
