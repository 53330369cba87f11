// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pharmanet/internal/delivery/api/middleware"
	"pharmanet/internal/delivery/api/router/handler"
	"pharmanet/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	AdminHandler      *handler.AdminHandler
	PharmacistHandler *handler.PharmacistHandler
	AccountHandler    *handler.AccountHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	adminHandler      *handler.AdminHandler
	pharmacistHandler *handler.PharmacistHandler
	accountHandler    *handler.AccountHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		adminHandler:      params.AdminHandler,
		pharmacistHandler: params.PharmacistHandler,
		accountHandler:    params.AccountHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/admin/login", r.authHandler.LoginAdministrator)
		authGroup.POST("/pharmacist/login", r.authHandler.LoginPharmacist)
		authGroup.POST("/customer/login", r.authHandler.LoginCustomer)
		authGroup.POST("/customer/register", r.authHandler.RegisterCustomer)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/administrators", r.adminHandler.ProvisionAdministrator)
		adminGroup.GET("/administrators", r.adminHandler.ListAdministrators)
		adminGroup.POST("/pharmacists", r.adminHandler.ProvisionPharmacist)
		adminGroup.GET("/pharmacists", r.adminHandler.ListPharmacists)
		adminGroup.GET("/directory", r.adminHandler.ListDirectory)
		adminGroup.POST("/pharmacies", r.adminHandler.ProvisionPharmacy)
		adminGroup.GET("/pharmacies", r.adminHandler.ListPharmacies)
		adminGroup.GET("/pharmacies/:id", r.adminHandler.GetPharmacy)
	}

	pharmacistGroup := e.Group("/pharmacist")
	pharmacistGroup.Use(r.authMiddleware.Authenticate)
	pharmacistGroup.Use(r.authMiddleware.RequireRole(entity.RolePharmacist))
	{
		pharmacistGroup.POST("/categories", r.pharmacistHandler.CreateCategory)
		pharmacistGroup.GET("/categories", r.pharmacistHandler.ListCategories)
		pharmacistGroup.GET("/pharmacy", r.pharmacistHandler.GetOwnPharmacy)
		pharmacistGroup.PATCH("/pharmacy/address", r.pharmacistHandler.UpdatePharmacyAddress)
		pharmacistGroup.POST("/pharmacy/snapshot", r.pharmacistHandler.RefreshPharmacySnapshot)
	}

	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/profile", r.accountHandler.GetProfile)
		accountGroup.PATCH("/profiles/:accountId", r.accountHandler.UpdateProfile)
		accountGroup.PUT("/password", r.accountHandler.ChangePassword)
	}
}
