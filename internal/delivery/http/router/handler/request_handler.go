package handler

import (
	"log/slog"
	"net/http"

	"lifeline/internal/delivery/http/response"
	"lifeline/internal/domain/entity"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// RequestHandler holds dependencies for help-request intake and read handlers.
type RequestHandler struct {
	uc     usecase.RequestUsecase
	logger *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler, injected by Fx.
func NewRequestHandler(uc usecase.RequestUsecase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		uc:     uc,
		logger: logger,
	}
}

// createRequestPayload is the wire shape of a help-request submission.
// Latitude and longitude are pointers so a missing field is distinguishable
// from a legitimate zero coordinate.
type createRequestPayload struct {
	RequesterName string   `json:"requester_name" validate:"required,max=100"`
	Contact       string   `json:"contact" validate:"required,max=255"`
	Category      string   `json:"category" validate:"required,oneof=medical rescue supplies shelter other"`
	Urgency       string   `json:"urgency" validate:"required,oneof=low medium high critical"`
	Description   string   `json:"description" validate:"max=2000"`
	Latitude      *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
}

// CreateRequest handles a new help-request submission.
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var payload createRequestPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request submission")
	}
	if err := c.Validate(&payload); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	request, err := h.uc.CreateRequest(c.Request().Context(), &usecase.CreateRequestInput{
		RequesterName: payload.RequesterName,
		Contact:       payload.Contact,
		Category:      entity.Category(payload.Category),
		Urgency:       entity.Urgency(payload.Urgency),
		Description:   payload.Description,
		Latitude:      *payload.Latitude,
		Longitude:     *payload.Longitude,
		ImageURL:      payload.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Request submitted")
}

// GetRequest handles reading a single request by id.
func (h *RequestHandler) GetRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Request id must be a UUID")
	}

	request, err := h.uc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "")
}

// ListRequests handles listing requests filtered by lifecycle status.
func (h *RequestHandler) ListRequests(c echo.Context) error {
	status, ok := entity.ParseStatus(c.QueryParam("status"))
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "status must be one of pending, accepted, completed, emergency")
	}

	limit := defaultListLimit
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit <= 0 || limit > maxListLimit {
		return response.BadRequest(c, "INVALID_INPUT", "limit must be a positive integer up to 200")
	}

	offset := 0
	if err := echo.QueryParamsBinder(c).Int("offset", &offset).BindError(); err != nil || offset < 0 {
		return response.BadRequest(c, "INVALID_INPUT", "offset must be a non-negative integer")
	}

	requests, err := h.uc.ListRequestsByStatus(c.Request().Context(), status, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "")
}
