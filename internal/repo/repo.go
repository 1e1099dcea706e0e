package repo

import (
	"context"

	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/influxdb"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/pgdb"
	"github.com/Camping-RSO/camping-logs-ms/pkg/influx"
	"github.com/Camping-RSO/camping-logs-ms/pkg/postgres"
)

type Log interface {
	GetLogs(ctx context.Context) ([]domain.Log, error)
	WriteLog(ctx context.Context, logObj *domain.Log) error
}

type Repositories struct {
	Log
}

func NewInfluxRepositories(db *influx.Influx) *Repositories {
	return &Repositories{
		Log: influxdb.NewLogRepo(db),
	}
}

func NewPostgresRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log: pgdb.NewLogRepo(pg),
	}
}
