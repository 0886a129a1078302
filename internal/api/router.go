package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/api/handler"
	"github.com/SoftGuar/Account-Management-Service/internal/api/middleware"
	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// Deps are the services and checks the router exposes.
type Deps struct {
	Accounts        map[domain.Kind]ports.AccountService
	Users           ports.UserService
	Recommendations ports.RecommendationService
	Actions         ports.UserActionService
	// Checks are pinged by the readiness endpoint; nil entries are skipped.
	Checks map[string]handler.PingFunc

	JWTSecret    string
	AuthDisabled bool
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.Metrics())

	// --- Health checks and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- API ---
	v1 := e.Group("/v1")
	var staff echo.MiddlewareFunc = noop
	if !d.AuthDisabled {
		v1.Use(middleware.Auth(d.JWTSecret))
		staff = middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
	}

	for _, kind := range domain.Kinds {
		svc, ok := d.Accounts[kind]
		if !ok {
			continue
		}
		g := v1.Group("/" + kind.Path())
		if kind == domain.KindAdmin || kind == domain.KindSuperAdmin {
			g.Use(staff)
		}
		handler.NewAccountHandler(svc).Register(g)
		if kind == domain.KindUser && d.Users != nil {
			handler.NewUserHandler(d.Users, d.Actions).Register(g)
		}
	}

	actionHandler := handler.NewUserActionHandler(d.Actions)
	v1.POST("/user-actions", actionHandler.Add)

	recHandler := handler.NewRecommendationHandler(d.Recommendations)
	recs := v1.Group("/helper-recommendations")
	recs.POST("", recHandler.Create)
	recs.GET("", recHandler.List, staff)
	recs.GET("/:id", recHandler.Get, staff)
	recs.PUT("/:id", recHandler.Update, staff)
	recs.DELETE("/:id", recHandler.Delete, staff)
	recs.POST("/:id/approve", recHandler.Approve, staff)
	recs.POST("/:id/reject", recHandler.Reject, staff)

	return e
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }
