package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/mikemajesty/admin-api/internal/api/handler"
	"github.com/mikemajesty/admin-api/internal/api/middleware"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/core/service"
	"github.com/mikemajesty/admin-api/internal/infrastructure/http/handlers"
)

const apiPrefix = "/api/v1"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log         zerolog.Logger
	Auth        ports.AuthService
	Roles       ports.RoleService
	Permissions ports.PermissionService
	Users       ports.UserService
	Tokens      ports.TokenService
	Revocations ports.TokenRevocationStore
	Authorizer  ports.Authorizer
	Registry    *service.PermissionRegistry
	Probes      map[string]handlers.Pinger

	// AuthRate and AuthBurst throttle the public credential endpoints per
	// client IP. A zero rate disables the limiter.
	AuthRate  float64
	AuthBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Protected routes record their permission in deps.Registry as they are mounted.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("admin_api"))

	// --- Operational endpoints (no auth required) ---
	health := handlers.NewHealthHandler(deps.Probes)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group(apiPrefix)
	authn := middleware.Auth(deps.Tokens, deps.Revocations)

	// --- Credential lifecycle ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	public := v1.Group("", authRateLimiter(deps.AuthRate, deps.AuthBurst)...)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)
	public.POST("/reset-password/send-email", authHandler.SendResetPasswordEmail)
	public.POST("/reset-password/:token", authHandler.ConfirmResetPassword)

	v1.POST("/logout", authHandler.Logout, authn)
	v1.PUT("/users/change-password", authHandler.ChangePassword, authn)

	p := &protector{group: v1, registry: deps.Registry, mw: []echo.MiddlewareFunc{authn, middleware.RequirePermission(deps.Authorizer)}}

	// --- Roles ---
	roles := handler.NewRoleHandler(deps.Roles)
	p.handle(http.MethodPost, "/roles", "role:create", roles.Create)
	p.handle(http.MethodGet, "/roles", "role:list", roles.List)
	p.handle(http.MethodGet, "/roles/:id", "role:get", roles.Get)
	p.handle(http.MethodPut, "/roles/:id", "role:update", roles.Rename)
	p.handle(http.MethodDelete, "/roles/:id", "role:delete", roles.Delete)
	p.handle(http.MethodPut, "/roles/:id/add-permissions", "role:addpermissions", roles.AddPermissions)
	p.handle(http.MethodPut, "/roles/:id/remove-permissions", "role:deletepermissions", roles.RemovePermissions)

	// --- Permission catalog ---
	permissions := handler.NewPermissionHandler(deps.Permissions)
	p.handle(http.MethodPost, "/permissions", "permission:create", permissions.Create)
	p.handle(http.MethodGet, "/permissions", "permission:list", permissions.List)
	p.handle(http.MethodGet, "/permissions/:id", "permission:get", permissions.Get)
	p.handle(http.MethodDelete, "/permissions/:id", "permission:delete", permissions.Delete)

	// --- Users ---
	users := handler.NewUserHandler(deps.Users)
	p.handle(http.MethodPost, "/users", "user:create", users.Create)
	p.handle(http.MethodGet, "/users", "user:list", users.List)
	p.handle(http.MethodGet, "/users/:id", "user:get", users.Get)
	p.handle(http.MethodPut, "/users/:id", "user:update", users.Update)
	p.handle(http.MethodDelete, "/users/:id", "user:delete", users.Delete)

	return e
}

// protector mounts routes that require a permission and records the
// requirement under the same operation identity RequirePermission computes.
type protector struct {
	group    *echo.Group
	registry *service.PermissionRegistry
	mw       []echo.MiddlewareFunc
}

func (p *protector) handle(method, path, permission string, h echo.HandlerFunc) {
	p.registry.Register(middleware.Operation(method, apiPrefix+path), permission)
	p.group.Add(method, path, h, p.mw...)
}

func authRateLimiter(r float64, burst int) []echo.MiddlewareFunc {
	if r <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(r),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
