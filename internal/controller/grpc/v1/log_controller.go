package grpcv1

import (
	"context"

	logginghelper "github.com/Camping-RSO/camping-logs-ms/internal/controller/common/logging"
	"github.com/Camping-RSO/camping-logs-ms/internal/controller/common/validators"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const transport = "grpc"

type LogController struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewLogController(ls service.Log, cnt *metrics.Counters) *LogController {
	return &LogController{
		logService: ls,
		counters:   cnt,
	}
}

func (c *LogController) CreateLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c.counters.Requests.Inc(transport, "CreateLog", "received")

	entry, err := validators.NewLog(stringField(req, fieldMicroservice), stringField(req, fieldMessage))
	if err != nil {
		c.counters.Requests.Inc(transport, "CreateLog", "invalid")
		return nil, status.Errorf(codes.InvalidArgument, "invalid argument: %s", err)
	}

	logginghelper.LogReceived(transport, entry)

	created, err := c.logService.CreateLog(ctx, entry.Microservice, entry.Message)
	if err != nil {
		c.counters.Requests.Inc(transport, "CreateLog", "failed")
		logginghelper.LogError(transport, "CreateLog", err)
		return nil, status.Error(codes.Unknown, err.Error())
	}

	logginghelper.LogSaved(transport, &created)
	c.counters.Requests.Inc(transport, "CreateLog", "ok")

	return ToStruct(created), nil
}

func (c *LogController) ListLogs(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	logs, err := c.logService.GetLogs(ctx)
	if err != nil {
		c.counters.Requests.Inc(transport, "ListLogs", "failed")
		logginghelper.LogError(transport, "ListLogs", err)
		return nil, status.Error(codes.Unknown, err.Error())
	}

	c.counters.Requests.Inc(transport, "ListLogs", "ok")
	logginghelper.LogListed(transport, len(logs))

	return ToListValue(logs), nil
}
