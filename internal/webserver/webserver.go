package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stockpilehq/stockpile/config"
	"go.uber.org/zap"
)

// WebServer wraps the echo instance serving the admin REST API.
type WebServer struct {
	root      *echo.Echo
	appConfig *config.AppConfig
}

// New creates the web server with the standard middleware chain.
func New(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewPayloadValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(zapRequestLogger())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Inventory Management API Running")
	})

	return &WebServer{root: e, appConfig: cfg}
}

// Root exposes the underlying echo instance, mainly for tests.
func (ws *WebServer) Root() *echo.Echo {
	return ws.root
}

// ApiGET registers a GET route under the /api prefix.
func (ws *WebServer) ApiGET(path string, h echo.HandlerFunc) {
	ws.root.GET("/api"+path, h)
}

// ApiPOST registers a POST route under the /api prefix.
func (ws *WebServer) ApiPOST(path string, h echo.HandlerFunc) {
	ws.root.POST("/api"+path, h)
}

// ApiPUT registers a PUT route under the /api prefix.
func (ws *WebServer) ApiPUT(path string, h echo.HandlerFunc) {
	ws.root.PUT("/api"+path, h)
}

// ApiDELETE registers a DELETE route under the /api prefix.
func (ws *WebServer) ApiDELETE(path string, h echo.HandlerFunc) {
	ws.root.DELETE("/api"+path, h)
}

// Start blocks serving HTTP until Shutdown.
func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.appConfig.Web.Host, ws.appConfig.Web.Port)
	zap.S().Infof("Starting web server %s", addr)
	return ws.root.Start(addr)
}

// Shutdown stops the server gracefully.
func (ws *WebServer) Shutdown(ctx context.Context) error {
	return ws.root.Shutdown(ctx)
}

// zapRequestLogger logs one line per request via the global zap logger.
func zapRequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	}
}
