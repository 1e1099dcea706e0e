package httpv1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	httpv1 "github.com/Camping-RSO/camping-logs-ms/internal/controller/http/v1"
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	service_mock "github.com/Camping-RSO/camping-logs-ms/internal/mocks/service"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/influxdb"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/influxdb/influxtest"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	logsQuery      = `{"query":"{ logs { microservice message } }"}`
	createLogQuery = `{"query":"mutation($ms: String, $msg: String) { createLog(microservice: $ms, message: $msg) { microservice message } }","variables":{"ms":%q,"msg":%q}}`
)

type gqlResponse struct {
	Data struct {
		Logs      *[]domain.Log `json:"logs"`
		CreateLog *domain.Log   `json:"createLog"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newRouter(t *testing.T, services *service.Services) *echo.Echo {
	t.Helper()
	e := echo.New()
	require.NoError(t, httpv1.ConfigureRouter(e, services, metrics.NewTestCounters(), true))
	return e
}

func newInfluxRouter(t *testing.T) (*echo.Echo, *influxtest.Server) {
	t.Helper()
	srv := influxtest.NewServer(t, "camping")
	services := service.NewServices(service.ServicesDependencies{
		Repos:    repo.NewInfluxRepositories(srv.Influx()),
		Counters: metrics.NewTestCounters(),
	})
	return newRouter(t, services), srv
}

func postGraphQL(t *testing.T, e *echo.Echo, body string) gqlResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Hello(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newRouter(t, &service.Services{Log: service_mock.NewMockLog(ctrl)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World from camping", rec.Body.String())
}

func TestRouter_HelloWithStoreDown(t *testing.T) {
	e, srv := newInfluxRouter(t)
	srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World from camping", rec.Body.String())

	resp := postGraphQL(t, e, logsQuery)
	assert.NotEmpty(t, resp.Errors)
	assert.Nil(t, resp.Data.Logs)
}

func TestRouter_Playground(t *testing.T) {
	e, _ := newInfluxRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "graphiql")
}

func TestRouter_RoundTrip(t *testing.T) {
	e, _ := newInfluxRouter(t)

	created := postGraphQL(t, e, fmt.Sprintf(createLogQuery, "svc-a", "hello"))
	require.Empty(t, created.Errors)
	assert.Equal(t, &domain.Log{Microservice: "svc-a", Message: "hello"}, created.Data.CreateLog)

	listed := postGraphQL(t, e, logsQuery)
	require.Empty(t, listed.Errors)
	require.NotNil(t, listed.Data.Logs)
	assert.Contains(t, *listed.Data.Logs, domain.Log{Microservice: "svc-a", Message: "hello"})
}

func TestRouter_EmptyStore(t *testing.T) {
	e, _ := newInfluxRouter(t)

	resp := postGraphQL(t, e, logsQuery)

	assert.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data.Logs)
	assert.Empty(t, *resp.Data.Logs)
}

func TestRouter_WriteFailureIsNotEchoed(t *testing.T) {
	e, srv := newInfluxRouter(t)
	srv.FailWrites("retention policy not found")

	resp := postGraphQL(t, e, fmt.Sprintf(createLogQuery, "svc-a", "hello"))

	assert.Nil(t, resp.Data.CreateLog)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "retention policy not found")
}

func TestRouter_UnknownField(t *testing.T) {
	e, srv := newInfluxRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ logz { message } }"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotContains(t, resp, "data")
	assert.NotEqual(t, "[]", string(resp["errors"]))
	assert.NotEmpty(t, resp["errors"])
	assert.Empty(t, srv.Queries())
}

func TestRouter_ConcurrentCreateLog(t *testing.T) {
	e, _ := newInfluxRouter(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			body := fmt.Sprintf(createLogQuery, fmt.Sprintf("svc-%d", i), fmt.Sprintf("message %d", i))
			req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}(i)
	}
	wg.Wait()

	resp := postGraphQL(t, e, logsQuery)
	require.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data.Logs)
	assert.Len(t, *resp.Data.Logs, writers)
	for i := 0; i < writers; i++ {
		assert.Contains(t, *resp.Data.Logs, domain.Log{
			Microservice: fmt.Sprintf("svc-%d", i),
			Message:      fmt.Sprintf("message %d", i),
		})
	}
}

func TestRouter_MalformedPointFailsWholeQuery(t *testing.T) {
	e, srv := newInfluxRouter(t)
	srv.Seed(influxdb.Measurement, map[string]interface{}{influxdb.FieldMicroservice: "svc-a", influxdb.FieldMessage: "ok"})
	srv.Seed(influxdb.Measurement, map[string]interface{}{influxdb.FieldMicroservice: "svc-a"})

	resp := postGraphQL(t, e, logsQuery)

	assert.Nil(t, resp.Data.Logs)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "missing microservice or message")
}
