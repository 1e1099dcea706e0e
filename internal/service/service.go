package service

import (
	"context"

	"github.com/Camping-RSO/camping-logs-ms/internal/broker"
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo"
)

type Log interface {
	GetLogs(ctx context.Context) ([]domain.Log, error)
	CreateLog(ctx context.Context, microservice, message string) (domain.Log, error)
}

type Services struct {
	Log
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log: NewLogService(deps.Repos.Log, deps.Counters, deps.BrokerProducer),
	}
}
