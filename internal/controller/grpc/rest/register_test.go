package grpcrest_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	grpcrest "github.com/Camping-RSO/camping-logs-ms/internal/controller/grpc/rest"
	grpcv1 "github.com/Camping-RSO/camping-logs-ms/internal/controller/grpc/v1"
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	service_mock "github.com/Camping-RSO/camping-logs-ms/internal/mocks/service"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	gw "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func newGateway(t *testing.T, ls service.Log) http.Handler {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	grpcv1.RegisterServices(&service.Services{Log: ls}, metrics.NewTestCounters())(srv)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	mux := gw.NewServeMux()
	require.NoError(t, grpcrest.RegisterServices(context.Background(), mux, conn))
	return mux
}

func TestGateway_CreateLog(t *testing.T) {
	type mockBehavior func(s *service_mock.MockLog)

	testCases := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		wantCode     int
		wantBody     string
	}{
		{
			name: "success",
			body: `{"microservice":"svc-a","message":"hello"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().CreateLog(gomock.Any(), "svc-a", "hello").
					Return(domain.Log{Microservice: "svc-a", Message: "hello"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"microservice":"svc-a","message":"hello"}`,
		},
		{
			name:         "missing message",
			body:         `{"microservice":"svc-a"}`,
			mockBehavior: func(s *service_mock.MockLog) {},
			wantCode:     http.StatusBadRequest,
		},
		{
			name:         "malformed body",
			body:         `{"microservice":`,
			mockBehavior: func(s *service_mock.MockLog) {},
			wantCode:     http.StatusBadRequest,
		},
		{
			name: "service error",
			body: `{"microservice":"svc-a","message":"hello"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().CreateLog(gomock.Any(), "svc-a", "hello").
					Return(domain.Log{}, errors.New("write failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ls := service_mock.NewMockLog(ctrl)
			tc.mockBehavior(ls)

			req := httptest.NewRequest(http.MethodPost, grpcrest.LogsPath, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			newGateway(t, ls).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGateway_ListLogs(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ls := service_mock.NewMockLog(ctrl)
		ls.EXPECT().GetLogs(gomock.Any()).Return([]domain.Log{
			{Microservice: "svc-a", Message: "hello"},
			{Microservice: "svc-b", Message: "world"},
		}, nil)

		rec := httptest.NewRecorder()
		newGateway(t, ls).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, grpcrest.LogsPath, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`[{"microservice":"svc-a","message":"hello"},{"microservice":"svc-b","message":"world"}]`,
			rec.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ls := service_mock.NewMockLog(ctrl)
		ls.EXPECT().GetLogs(gomock.Any()).Return(nil, errors.New("influx unreachable"))

		rec := httptest.NewRecorder()
		newGateway(t, ls).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, grpcrest.LogsPath, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "influx unreachable")
	})
}
