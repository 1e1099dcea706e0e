package app

import (
	"errors"
	"os"
	"strings"
	"time"

	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second

	migrationsPath = "migrations"
)

// Migrate brings the postgres logs table up to date. Only the postgres driver uses it.
func Migrate(pgUrl string) {
	if !strings.Contains(pgUrl, "sslmode=") {
		sep := "?"
		if strings.Contains(pgUrl, "?") {
			sep = "&"
		}
		pgUrl += sep + "sslmode=disable"
	}
	log.Info("Running postgres migrations")

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		log.Fatalf("migrations directory %q does not exist", migrationsPath)
	}

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		connAttempts--
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
	}

	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return
	}

	log.Info("Migration successful up")
}
