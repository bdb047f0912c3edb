package handler

import (
	"log/slog"
	"net/http"

	"lifeline/internal/delivery/http/response"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LifecycleHandler holds dependencies for the request lifecycle handlers:
// claim, complete, and escalate.
type LifecycleHandler struct {
	uc     usecase.LifecycleUsecase
	logger *slog.Logger
}

// NewLifecycleHandler is the constructor for LifecycleHandler, injected by Fx.
func NewLifecycleHandler(uc usecase.LifecycleUsecase, logger *slog.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		uc:     uc,
		logger: logger,
	}
}

type lifecyclePayload struct {
	RequestID string `json:"request_id" validate:"required,uuid"`
}

// completionData is the response body for a completion, pairing the committed
// request with the notification outcome.
type completionData struct {
	Request          any    `json:"request"`
	NotificationSent bool   `json:"notification_sent"`
	NotificationNote string `json:"notification_note,omitempty"`
}

// escalationData is the response body for an escalation: the committed
// request plus a summary of the alert fan-out.
type escalationData struct {
	Request       any        `json:"request"`
	AlertID       *uuid.UUID `json:"alert_id,omitempty"`
	NotifiedCount int        `json:"notified_count"`
	FailedCount   int        `json:"failed_count"`
}

// Claim handles a volunteer claiming a pending request.
func (h *LifecycleHandler) Claim(c echo.Context) error {
	call, err := h.bindLifecycleCall(c)
	if call == nil {
		return err
	}

	request, err := h.uc.Claim(c.Request().Context(), call.requestID, call.volunteerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Request claimed")
}

// Complete handles a volunteer closing an accepted request. The lifecycle
// transition and the requester SMS are reported independently: a notification
// failure never hides the committed completion.
func (h *LifecycleHandler) Complete(c echo.Context) error {
	call, err := h.bindLifecycleCall(c)
	if call == nil {
		return err
	}

	result, err := h.uc.Complete(c.Request().Context(), call.requestID, call.volunteerID)
	if err != nil {
		return errors.WithStack(err)
	}

	if result.Notification == nil {
		return response.Success(c, http.StatusOK, completionData{
			Request:          result.Request,
			NotificationSent: true,
		}, "Request completed")
	}

	code, errorCode, message, details := describeOutcome(result.Notification)
	data := completionData{
		Request:          result.Request,
		NotificationSent: false,
		NotificationNote: message,
	}

	return response.PartialSuccess(c, code, data, errorCode, message, details)
}

// Escalate handles a volunteer declaring an emergency on an accepted request.
func (h *LifecycleHandler) Escalate(c echo.Context) error {
	call, err := h.bindLifecycleCall(c)
	if call == nil {
		return err
	}

	result, err := h.uc.Escalate(c.Request().Context(), call.requestID, call.volunteerID)
	if err != nil {
		return errors.WithStack(err)
	}

	data := escalationData{
		Request:       result.Request,
		NotifiedCount: result.NotifiedCount,
		FailedCount:   result.FailedCount,
	}
	if result.Alert != nil {
		data.AlertID = &result.Alert.ID
	}

	if result.Warning == nil {
		return response.Success(c, http.StatusOK, data, "Emergency declared")
	}

	code, errorCode, message, details := describeOutcome(result.Warning)

	return response.PartialSuccess(c, code, data, errorCode, message, details)
}

type lifecycleCall struct {
	requestID   uuid.UUID
	volunteerID uuid.UUID
}

// bindLifecycleCall resolves the caller identity and the target request. On
// failure it writes the error response itself and returns a nil call.
func (h *LifecycleHandler) bindLifecycleCall(c echo.Context) (*lifecycleCall, error) {
	volunteerID, ok := authenticatedVolunteer(c)
	if !ok {
		return nil, response.Unauthorized(c, "INVALID_TOKEN", "Volunteer identity missing from token")
	}

	var payload lifecyclePayload
	if err := c.Bind(&payload); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid lifecycle input")
	}
	if err := c.Validate(&payload); err != nil {
		return nil, response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "request_id must be a UUID")
	}

	return &lifecycleCall{requestID: requestID, volunteerID: volunteerID}, nil
}

// describeOutcome unpacks a partial-success AppError into envelope fields.
// Non-AppError warnings fall back to a generic 500.
func describeOutcome(warning error) (code int, errorCode, message, details string) {
	var appErr domainerrors.AppError
	if errors.As(warning, &appErr) {
		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", warning.Error()
}
