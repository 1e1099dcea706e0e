package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Camping-RSO/camping-logs-ms/internal/broker"
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo"
	log "github.com/sirupsen/logrus"
)

type LogService struct {
	logRepo        repo.Log
	counters       *metrics.Counters
	brokerProducer broker.Producer
}

// NewLogService builds the service. A nil producer disables event publishing.
func NewLogService(lr repo.Log, cnt *metrics.Counters, p broker.Producer) *LogService {
	return &LogService{
		logRepo:        lr,
		counters:       cnt,
		brokerProducer: p,
	}
}

func (s *LogService) GetLogs(ctx context.Context) ([]domain.Log, error) {
	logs, err := s.logRepo.GetLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotGetLogs, err)
	}
	return logs, nil
}

// CreateLog writes the log and returns the value built from its arguments.
// The store is not read back, so the result only confirms the write call returned nil.
func (s *LogService) CreateLog(ctx context.Context, microservice, message string) (domain.Log, error) {
	logObj := domain.Log{
		Microservice: microservice,
		Message:      message,
	}

	if err := s.logRepo.WriteLog(ctx, &logObj); err != nil {
		return domain.Log{}, fmt.Errorf("%w: %w", ErrCannotCreateLog, err)
	}

	s.counters.LogsCreated.Inc(logObj.Microservice)
	s.publish(ctx, logObj)

	return logObj, nil
}

func (s *LogService) publish(ctx context.Context, logObj domain.Log) {
	if s.brokerProducer == nil {
		return
	}

	value, err := json.Marshal(logObj)
	if err != nil {
		log.WithError(err).Error("Failed to encode log event")
		return
	}

	if err := s.brokerProducer.SendMessage(ctx, value); err != nil {
		log.WithFields(log.Fields{
			"microservice": logObj.Microservice,
			"error":        err,
		}).Warn("Log stored but event was not published")
	}
}
