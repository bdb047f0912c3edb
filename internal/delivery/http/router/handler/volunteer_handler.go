package handler

import (
	"log/slog"
	"net/http"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/response"
	"lifeline/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VolunteerHandler holds dependencies for volunteer-related handlers.
type VolunteerHandler struct {
	uc     usecase.VolunteerUsecase
	logger *slog.Logger
}

// NewVolunteerHandler is the constructor for VolunteerHandler, injected by Fx.
func NewVolunteerHandler(uc usecase.VolunteerUsecase, logger *slog.Logger) *VolunteerHandler {
	return &VolunteerHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerVolunteerPayload struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Contact        string   `json:"contact" validate:"required,max=255"`
	Password       string   `json:"password" validate:"required,min=8,max=72"`
	Skills         string   `json:"skills" validate:"max=2000"`
	Certifications []string `json:"certifications" validate:"dive,max=100"`
}

type loginPayload struct {
	Contact  string `json:"contact" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	FCMToken string `json:"fcm_token" validate:"omitempty,max=4096"`
}

// loginData is the response body for a successful login.
type loginData struct {
	Volunteer   any    `json:"volunteer"`
	AccessToken string `json:"access_token"`
}

type updateLocationPayload struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// Register handles volunteer registration.
func (h *VolunteerHandler) Register(c echo.Context) error {
	var payload registerVolunteerPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&payload); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	volunteer, err := h.uc.Register(c.Request().Context(), &usecase.RegisterVolunteerInput{
		Name:           payload.Name,
		Contact:        payload.Contact,
		Password:       payload.Password,
		Skills:         payload.Skills,
		Certifications: payload.Certifications,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, volunteer, "Volunteer registered")
}

// Login handles a volunteer login and returns a bearer token.
func (h *VolunteerHandler) Login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&payload); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	result, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Contact:  payload.Contact,
		Password: payload.Password,
		FCMToken: payload.FCMToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginData{
		Volunteer:   result.Volunteer,
		AccessToken: result.AccessToken,
	}, "Login successful")
}

// UpdateLocation handles the authenticated volunteer's position refresh.
func (h *VolunteerHandler) UpdateLocation(c echo.Context) error {
	volunteerID, ok := authenticatedVolunteer(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Volunteer identity missing from token")
	}

	var payload updateLocationPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	if err := c.Validate(&payload); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	volunteer, err := h.uc.UpdateLocation(c.Request().Context(), volunteerID, *payload.Latitude, *payload.Longitude)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, volunteer, "Location updated")
}

// GetProfile handles reading the authenticated volunteer's own profile.
func (h *VolunteerHandler) GetProfile(c echo.Context) error {
	volunteerID, ok := authenticatedVolunteer(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Volunteer identity missing from token")
	}

	volunteer, err := h.uc.GetVolunteer(c.Request().Context(), volunteerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, volunteer, "")
}

// authenticatedVolunteer extracts the volunteer id the auth middleware stored
// on the context.
func authenticatedVolunteer(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.VolunteerIDKey).(uuid.UUID)

	return id, ok
}
