package graphqlctl

import (
	"context"

	logginghelper "github.com/Camping-RSO/camping-logs-ms/internal/controller/common/logging"
	"github.com/Camping-RSO/camping-logs-ms/internal/controller/common/validators"
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
)

const transport = "graphql"

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewResolver(ls service.Log, cnt *metrics.Counters) *Resolver {
	return &Resolver{
		logService: ls,
		counters:   cnt,
	}
}

type createLogArgs struct {
	Microservice *string
	Message      *string
}

func (r *Resolver) Logs(ctx context.Context) (*[]*logResolver, error) {
	logs, err := r.logService.GetLogs(ctx)
	if err != nil {
		r.counters.Requests.Inc(transport, "logs", "failed")
		logginghelper.LogError(transport, "logs", err)
		return nil, err
	}

	resolvers := make([]*logResolver, 0, len(logs))
	for _, l := range logs {
		resolvers = append(resolvers, &logResolver{l})
	}

	r.counters.Requests.Inc(transport, "logs", "ok")
	logginghelper.LogListed(transport, len(resolvers))

	return &resolvers, nil
}

func (r *Resolver) CreateLog(ctx context.Context, args createLogArgs) (*logResolver, error) {
	r.counters.Requests.Inc(transport, "createLog", "received")

	entry, err := validators.NewLog(args.Microservice, args.Message)
	if err != nil {
		r.counters.Requests.Inc(transport, "createLog", "invalid")
		return nil, err
	}

	logginghelper.LogReceived(transport, entry)

	created, err := r.logService.CreateLog(ctx, entry.Microservice, entry.Message)
	if err != nil {
		r.counters.Requests.Inc(transport, "createLog", "failed")
		logginghelper.LogError(transport, "createLog", err)
		return nil, err
	}

	logginghelper.LogSaved(transport, &created)
	r.counters.Requests.Inc(transport, "createLog", "ok")

	return &logResolver{created}, nil
}

type logResolver struct {
	log domain.Log
}

func (l *logResolver) Microservice() *string {
	return &l.log.Microservice
}

func (l *logResolver) Message() *string {
	return &l.log.Message
}
