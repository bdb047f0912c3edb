// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RequestHandler   *handler.RequestHandler
	LifecycleHandler *handler.LifecycleHandler
	VolunteerHandler *handler.VolunteerHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	requestHandler   *handler.RequestHandler
	lifecycleHandler *handler.LifecycleHandler
	volunteerHandler *handler.VolunteerHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		requestHandler:   params.RequestHandler,
		lifecycleHandler: params.LifecycleHandler,
		volunteerHandler: params.VolunteerHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public request intake and reads
	e.POST("/requests", r.requestHandler.CreateRequest)
	e.GET("/requests/:id", r.requestHandler.GetRequest)
	e.GET("/requests", r.requestHandler.ListRequests)

	// Lifecycle transitions require an authenticated volunteer
	lifecycleGroup := e.Group("/requests/lifecycle")
	lifecycleGroup.Use(r.authMiddleware.Authenticate)
	{
		lifecycleGroup.PATCH("/claim", r.lifecycleHandler.Claim)
		lifecycleGroup.POST("/complete", r.lifecycleHandler.Complete)
		lifecycleGroup.PUT("/escalate", r.lifecycleHandler.Escalate)
	}

	// Volunteer routes; registration and login are public, everything else
	// authenticated
	volunteerGroup := e.Group("/volunteers")
	{
		volunteerGroup.POST("/register", r.volunteerHandler.Register)
		volunteerGroup.POST("/login", r.volunteerHandler.Login)

		volunteerGroup.PUT("/location", r.volunteerHandler.UpdateLocation, r.authMiddleware.Authenticate)
		volunteerGroup.GET("/me", r.volunteerHandler.GetProfile, r.authMiddleware.Authenticate)
	}
}
