package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/infrastructure"
	"safeCast/internal/shared/auth"
)

// Dependencies groups what the routes need.
type Dependencies struct {
	Hub        *infrastructure.Hub
	CoerceUC   *usecase.CoerceUseCase
	Validator  *auth.JWTValidator
	SendBuffer int

	// CommandTimeout bounds each websocket coerce, classify or batch command.
	// Zero keeps the processor default.
	CommandTimeout time.Duration
}

// RegisterRoutes mounts the HTTP and websocket API on e.
func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	mapper := NewErrorMapper()
	handlers := NewCoercionHandlers(deps.CoerceUC, deps.Hub, mapper)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.GET("/healthz", handlers.Health)

	v1 := e.Group("/v1", RequireToken(deps.Validator, auth.ScopeCoerce, mapper))
	v1.POST("/coerce", handlers.CoerceBatch)
	v1.POST("/coerce/:target", handlers.Coerce)
	v1.POST("/classify", handlers.Classify)

	ws := e.Group("/ws", RequireToken(deps.Validator, auth.ScopeStream, mapper))
	ws.GET("/coerce", NewWebsocketHandler(deps.Hub, deps.CoerceUC, deps.SendBuffer, deps.CommandTimeout))
}
