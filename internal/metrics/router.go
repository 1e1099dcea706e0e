package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

const subsystem = "camping_logs"

func ConfigureRouter(handler *echo.Echo) {
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// ConfigureMiddleware records request metrics for every route of handler.
// It registers collectors on the default registry and must run once per process.
func ConfigureMiddleware(handler *echo.Echo) {
	handler.Use(echoprometheus.NewMiddleware(subsystem))
}
