package grpcv1

import (
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	"google.golang.org/grpc"
)

func RegisterServices(services *service.Services, counters *metrics.Counters) func(s *grpc.Server) {
	return func(s *grpc.Server) {
		RegisterLogServiceServer(s, NewLogController(services.Log, counters))
	}
}
