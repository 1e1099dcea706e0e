package logginghelper

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("Request failed")
				return nil
			}
			entry.Debug("Request handled")
			return nil
		},
	})
}

// Recover turns handler panics into 500 responses. With verbose set the stack
// trace is logged and echo's debug mode exposes the panic message to the client.
func Recover(verbose bool) echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: !verbose,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			entry := log.WithFields(log.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			})
			if verbose {
				entry = entry.WithField("stack", string(stack))
			}
			entry.WithError(err).Error("Recovered from panic")
			return err
		},
	})
}
