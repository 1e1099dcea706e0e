package httpv1

import (
	"net/http"

	logginghelper "github.com/Camping-RSO/camping-logs-ms/internal/controller/common/logging"
	graphqlctl "github.com/Camping-RSO/camping-logs-ms/internal/controller/graphql"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	"github.com/labstack/echo/v4"
)

const greeting = "Hello World from camping"

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters, debug bool) error {
	handler.HideBanner = true
	handler.Debug = debug
	handler.Use(logginghelper.Recover(debug), logginghelper.RequestLogger())

	handler.GET("/", hello)

	gql, err := graphqlctl.NewHandler(services.Log, counters)
	if err != nil {
		return err
	}
	handler.POST(graphqlctl.Endpoint, gql.Execute)
	handler.GET(graphqlctl.Endpoint, gql.Playground)

	return nil
}

func hello(c echo.Context) error {
	return c.String(http.StatusOK, greeting)
}
