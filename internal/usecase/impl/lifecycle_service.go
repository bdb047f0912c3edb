// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifeline/config"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type lifecycleService struct {
	logger        *slog.Logger
	requestRepo   repository.RequestRepository
	volunteerRepo repository.VolunteerRepository
	txManager     repository.TransactionManager
	messenger     service.Messenger
	pushSvc       service.PushService
	publisher     service.EventPublisher
	alerting      *config.AlertingConfig
}

// NewLifecycleService creates the lifecycle use case instance. pushSvc may be
// nil when Firebase is not configured; SMS remains the primary alert channel.
func NewLifecycleService(
	logger *slog.Logger,
	requestRepo repository.RequestRepository,
	volunteerRepo repository.VolunteerRepository,
	txManager repository.TransactionManager,
	messenger service.Messenger,
	pushSvc service.PushService,
	publisher service.EventPublisher,
	cfg *config.Config,
) usecase.LifecycleUsecase {
	return &lifecycleService{
		logger:        logger,
		requestRepo:   requestRepo,
		volunteerRepo: volunteerRepo,
		txManager:     txManager,
		messenger:     messenger,
		pushSvc:       pushSvc,
		publisher:     publisher,
		alerting:      cfg.Alerting,
	}
}

// Claim transitions a pending request to accepted under the caller's
// ownership. The repository performs one atomic conditional update; losing
// the race surfaces as ALREADY_CLAIMED with no side effects.
func (s *lifecycleService) Claim(ctx context.Context, requestID, volunteerID uuid.UUID) (*entity.Request, error) {
	if err := s.requestRepo.ClaimRequest(ctx, requestID, volunteerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return nil, domainerrors.ErrRequestNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, domainerrors.ErrAlreadyClaimed
		default:
			return nil, errors.Wrap(err, "failed to claim request")
		}
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload claimed request")
	}

	s.logger.Info("request claimed",
		slog.String("request_id", requestID.String()),
		slog.String("volunteer_id", volunteerID.String()),
	)

	return request, nil
}

// Complete transitions an accepted request owned by the caller to completed,
// then dispatches the completion SMS. The transition and the notification
// are separately-reported outcomes: a dispatch failure never rolls the
// committed completion back.
func (s *lifecycleService) Complete(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.CompletionResult, error) {
	if err := s.requestRepo.CompleteRequest(ctx, requestID, volunteerID); err != nil {
		return nil, mapTransitionError(err, "failed to complete request")
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload completed request")
	}

	result := &usecase.CompletionResult{Request: request}

	to, err := normalizeSMSContact(request.Contact, s.alerting.DefaultCountryCode)
	if err != nil {
		s.logger.Warn("completion SMS skipped, contact not dialable",
			slog.String("request_id", requestID.String()),
			slog.String("error", err.Error()),
		)
		result.Notification = domainerrors.ErrInvalidContact.WithDetails(err.Error())

		return result, nil
	}

	body := fmt.Sprintf(
		"Your %s request has been completed by a volunteer. Stay safe.",
		request.Category,
	)
	if err := s.messenger.SendSMS(ctx, to, body); err != nil {
		s.logger.Error("completion SMS dispatch failed",
			slog.String("request_id", requestID.String()),
			slog.String("error", err.Error()),
		)
		result.Notification = domainerrors.ErrNotificationFailed.WithDetails(err.Error())

		return result, nil
	}

	s.logger.Info("request completed",
		slog.String("request_id", requestID.String()),
		slog.String("volunteer_id", volunteerID.String()),
	)

	return result, nil
}

// Escalate promotes an accepted request owned by the caller to emergency,
// emails the oversight authority, and fans an alert out to every volunteer
// within the configured radius. Steps after the status transition never undo
// it: a missing recipient set or failed deliveries are reported as warnings
// on an otherwise successful escalation.
func (s *lifecycleService) Escalate(ctx context.Context, requestID, volunteerID uuid.UUID) (*usecase.EscalationResult, error) {
	if err := s.requestRepo.EscalateRequest(ctx, requestID, volunteerID); err != nil {
		return nil, mapTransitionError(err, "failed to escalate request")
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload escalated request")
	}

	s.notifyAuthority(ctx, request)

	result := &usecase.EscalationResult{Request: request}

	inRange, err := s.volunteerRepo.FindWithinRadius(ctx, request.Latitude, request.Longitude, s.alerting.RadiusMeters)
	if err != nil {
		// The emergency transition is already committed; the caller retries
		// the alerting leg by re-querying, not by re-escalating.
		return nil, errors.Wrap(err, "proximity query failed")
	}

	volunteers := availableVolunteers(inRange, s.alerting.AvailabilityWindow, time.Now())

	if len(volunteers) == 0 {
		s.logger.Warn("escalation found no volunteers in range",
			slog.String("request_id", requestID.String()),
			slog.Float64("radius_m", s.alerting.RadiusMeters),
		)
		result.Warning = domainerrors.ErrNoRecipientsFound
		s.publishEscalation(ctx, request, nil)

		return result, nil
	}

	alert := buildAlert(request, volunteers)
	if err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		alertRepo := factory.NewAlertRepository()
		if err := alertRepo.CreateAlert(ctx, alert); err != nil {
			return errors.Wrap(err, "create alert")
		}

		recipients := make([]*entity.AlertRecipient, 0, len(alert.Recipients))
		for i := range alert.Recipients {
			recipients = append(recipients, &alert.Recipients[i])
		}

		return errors.Wrap(alertRepo.BatchCreateRecipients(ctx, recipients), "create alert recipients")
	}); err != nil {
		return nil, errors.Wrap(err, "failed to persist alert")
	}

	result.Alert = alert
	result.NotifiedCount, result.FailedCount = s.fanOut(ctx, request, alert, volunteers)
	if result.FailedCount > 0 {
		result.Warning = domainerrors.ErrPartialDeliveryFailure.WithDetails(
			fmt.Sprintf("%d of %d recipient notifications failed", result.FailedCount, len(volunteers)),
		)
	}

	s.publishEscalation(ctx, request, alert)

	s.logger.Info("request escalated",
		slog.String("request_id", requestID.String()),
		slog.String("alert_id", alert.ID.String()),
		slog.Int("recipients", len(alert.Recipients)),
		slog.Int("delivery_failures", result.FailedCount),
	)

	return result, nil
}

// notifyAuthority emails the oversight authority. Fire-and-forget: failure is
// logged and never reverses the committed emergency transition.
func (s *lifecycleService) notifyAuthority(ctx context.Context, request *entity.Request) {
	if s.alerting.AuthorityEmail == "" {
		return
	}

	subject := fmt.Sprintf("EMERGENCY: %s request escalated (%s urgency)", request.Category, request.Urgency)
	body := fmt.Sprintf(
		"Request %s by %s has been escalated to emergency.\n\nCategory: %s\nUrgency: %s\nDetails: %s\nLocation: %s\n",
		request.ID, request.RequesterName, request.Category, request.Urgency,
		request.Description, mapsLink(request.Latitude, request.Longitude),
	)

	if err := s.messenger.SendEmail(ctx, s.alerting.AuthorityEmail, subject, body); err != nil {
		s.logger.Error("authority notification failed",
			slog.String("request_id", request.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// fanOut delivers the alert to each recipient individually: SMS always, push
// additionally when the volunteer has a device token. Per-recipient failures
// are counted, never fatal; the alert rows are already committed.
func (s *lifecycleService) fanOut(ctx context.Context, request *entity.Request, alert *entity.Alert, volunteers []*entity.Volunteer) (notified, failed int) {
	for _, volunteer := range volunteers {
		delivered := false

		if to, err := normalizeSMSContact(volunteer.Contact, s.alerting.DefaultCountryCode); err == nil {
			body := alertBody(request, volunteer)
			if err := s.messenger.SendSMS(ctx, to, body); err != nil {
				s.logger.Warn("alert SMS failed",
					slog.String("alert_id", alert.ID.String()),
					slog.String("volunteer_id", volunteer.ID.String()),
					slog.String("error", err.Error()),
				)
			} else {
				delivered = true
			}
		} else {
			s.logger.Warn("alert SMS skipped, contact not dialable",
				slog.String("alert_id", alert.ID.String()),
				slog.String("volunteer_id", volunteer.ID.String()),
			)
		}

		if s.pushSvc != nil && volunteer.FCMToken != "" {
			data := map[string]string{
				"alert_id":   alert.ID.String(),
				"request_id": request.ID.String(),
				"latitude":   fmt.Sprintf("%f", request.Latitude),
				"longitude":  fmt.Sprintf("%f", request.Longitude),
				"urgency":    string(request.Urgency),
			}
			if err := s.pushSvc.SendSingleNotification(ctx, volunteer.FCMToken, "Emergency nearby", alert.Message, data); err != nil {
				s.logger.Warn("alert push failed",
					slog.String("alert_id", alert.ID.String()),
					slog.String("volunteer_id", volunteer.ID.String()),
					slog.String("error", err.Error()),
				)
			} else {
				delivered = true
			}
		}

		if delivered {
			notified++
		} else {
			failed++
		}
	}

	return notified, failed
}

// publishEscalation pushes the escalation event onto the event bus,
// fire-and-forget.
func (s *lifecycleService) publishEscalation(ctx context.Context, request *entity.Request, alert *entity.Alert) {
	if s.publisher == nil {
		return
	}

	event := &service.EscalationEvent{
		RequestID:      request.ID.String(),
		Category:       string(request.Category),
		Urgency:        string(request.Urgency),
		Latitude:       request.Latitude,
		Longitude:      request.Longitude,
		EscalatedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
	if alert != nil {
		event.AlertID = alert.ID.String()
		event.RecipientIDs = make([]string, 0, len(alert.Recipients))
		for _, recipient := range alert.Recipients {
			event.RecipientIDs = append(event.RecipientIDs, recipient.VolunteerID.String())
		}
	}

	if err := s.publisher.PublishEscalationEvent(ctx, event); err != nil {
		s.logger.Warn("escalation event publish failed",
			slog.String("request_id", request.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// availableVolunteers keeps the volunteers who logged in within the window.
// An account that is in range but has not been seen for days gets no alert.
func availableVolunteers(volunteers []*entity.Volunteer, window time.Duration, now time.Time) []*entity.Volunteer {
	available := make([]*entity.Volunteer, 0, len(volunteers))
	for _, volunteer := range volunteers {
		if volunteer.AvailableSince(window, now) {
			available = append(available, volunteer)
		}
	}

	return available
}

// buildAlert assembles the alert and its denormalized recipient snapshot.
// Recipient name/contact are captured here so later volunteer edits cannot
// rewrite alert history.
func buildAlert(request *entity.Request, volunteers []*entity.Volunteer) *entity.Alert {
	now := time.Now()
	alert := &entity.Alert{
		ID:           uuid.New(),
		RequestID:    request.ID,
		Latitude:     request.Latitude,
		Longitude:    request.Longitude,
		Message: fmt.Sprintf(
			"EMERGENCY %s (%s urgency): %s. Location: %s",
			request.Category, request.Urgency, request.RequesterName,
			mapsLink(request.Latitude, request.Longitude),
		),
		OriginatedAt: now,
		CreatedAt:    now,
	}

	alert.Recipients = make([]entity.AlertRecipient, 0, len(volunteers))
	for _, volunteer := range volunteers {
		alert.Recipients = append(alert.Recipients, entity.AlertRecipient{
			ID:          uuid.New(),
			AlertID:     alert.ID,
			VolunteerID: volunteer.ID,
			Name:        volunteer.Name,
			Contact:     volunteer.Contact,
		})
	}

	return alert
}

// alertBody renders the per-recipient SMS, including the recipient's rough
// distance from the incident when their location is known.
func alertBody(request *entity.Request, volunteer *entity.Volunteer) string {
	body := fmt.Sprintf(
		"EMERGENCY %s (%s urgency) near you. %s",
		request.Category, request.Urgency, mapsLink(request.Latitude, request.Longitude),
	)

	if volunteer.HasLocation() {
		meters := geo.Distance(
			orb.Point{request.Longitude, request.Latitude},
			orb.Point{*volunteer.Longitude, *volunteer.Latitude},
		)
		body = fmt.Sprintf("%s (~%.1f km away)", body, meters/1000)
	}

	return body
}

// mapsLink renders a map-link-style coordinate pair for messages.
func mapsLink(latitude, longitude float64) string {
	return fmt.Sprintf("https://maps.google.com/?q=%f,%f", latitude, longitude)
}

// mapTransitionError folds the repository's conditional-update outcomes into
// the operation's precondition error: for complete/escalate both a missing
// row and a failed predicate surface as NOT_ELIGIBLE.
func mapTransitionError(err error, context string) error {
	switch {
	case errors.Is(err, repository.ErrRequestNotFound), errors.Is(err, repository.ErrStatusConflict):
		return domainerrors.ErrNotEligible
	default:
		return errors.Wrap(err, context)
	}
}
