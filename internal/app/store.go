package app

import (
	"context"
	"fmt"

	"github.com/Camping-RSO/camping-logs-ms/internal/config"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo"
	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	"github.com/Camping-RSO/camping-logs-ms/pkg/influx"
	"github.com/Camping-RSO/camping-logs-ms/pkg/postgres"
	log "github.com/sirupsen/logrus"
)

// openStore builds the repositories for the configured driver. The returned
// func releases whatever the driver holds open.
func openStore(ctx context.Context, cfg *config.Config) (*repo.Repositories, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverInflux:
		db := newInflux(cfg.Influx)
		// The store is optional at startup: GET / must answer without it.
		if version, err := db.Ping(); err != nil {
			log.WithField("addr", db.Addr()).Warnf("InfluxDB is not reachable yet: %v", err)
		} else {
			log.WithFields(log.Fields{"addr": db.Addr(), "version": version}).Info("Connected to InfluxDB")
		}
		return repo.NewInfluxRepositories(db), func() {}, nil

	case config.DriverPostgres:
		Migrate(cfg.PG.URL)

		log.Info("Connecting to DB")
		pg, err := postgres.New(ctx, cfg.PG.URL,
			postgres.MaxPoolSize(cfg.PG.MaxPoolSize),
			postgres.ConnAttempts(cfg.PG.ConnAttempts),
			postgres.ConnTimeout(cfg.PG.ConnTimeout),
		)
		if err != nil {
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		log.Info("Connected to DB")
		return repo.NewPostgresRepositories(pg), pg.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Store.Driver)
}

func newInflux(cfg config.Influx) *influx.Influx {
	return influx.New(cfg.Host, cfg.Port,
		influx.Credentials(cfg.User, cfg.Password),
		influx.Database(cfg.Database),
		influx.SSL(cfg.SSL),
		influx.InsecureSkipVerify(cfg.InsecureSkipVerify),
		influx.Timeout(cfg.Timeout),
	)
}
