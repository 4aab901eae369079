// Package enquiries provides the enquiry intake and triage domain module.
package enquiries

import (
	"enquiry_backend/internal/email"
	"enquiry_backend/internal/enquiries/handler"
	"enquiry_backend/internal/enquiries/notifier"
	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/internal/enquiries/service"
	"enquiry_backend/internal/enquiries/transport"
	apphttp "enquiry_backend/internal/http"
	"enquiry_backend/platform/config"
	"enquiry_backend/platform/logger"
	"enquiry_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the enquiries domain module
type Module struct {
	service *service.Service
}

// NewModule creates a new enquiries module with all dependencies wired.
// It registers the enquiry validation rules on val.
func NewModule(pool *pgxpool.Pool, sender email.Sender, cfg config.NotificationConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := transport.RegisterValidations(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	n := notifier.New(sender, cfg, log)
	svc := service.New(repo, n, val, log)

	return &Module{service: svc}, nil
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "enquiries"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public submission route and the guarded admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	h := handler.New(m.service, ctx.Errors)

	enquiries := ctx.API.Group("/enquiries")
	h.RegisterPublicRoutes(enquiries)
	h.RegisterAdminRoutes(enquiries.Group("", ctx.AdminAuth))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
