package http

import (
	"log/slog"
	"net/http"

	"commerce/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig tunes the middleware chain.
type RouterConfig struct {
	JWTSecret []byte
	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the echo instance serving the REST API, health check and swagger UI.
func NewRouter(server *Server, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(swagger); err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	if cfg.RateLimitRPS > 0 {
		e.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	e.Use(StoreCode())
	e.Use(Identity(cfg.JWTSecret))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}
