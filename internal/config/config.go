package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DriverInflux   = "influx"
	DriverPostgres = "postgres"

	defaultConfigPath = "infra/config.yaml"
	defaultEnvPath    = "infra/.env"
)

var ErrUnknownDriver = errors.New("unknown store driver")

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Store      `yaml:"store"`
		Influx     `yaml:"influx"`
		PG         `yaml:"postgres"`
		GRPC       `yaml:"grpc"`
		Kafka      `yaml:"kafka"`
		Prometheus `yaml:"prometheus"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"camping-logs-ms"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	}

	HTTP struct {
		Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"80"`
		Debug        bool          `yaml:"debug" env:"HTTP_DEBUG" env-default:"true"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"0s"`
	}

	Store struct {
		Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"influx"`
	}

	// Influx has no defaults for coordinates: unset values reach the client
	// unchanged and fail on the first operation.
	Influx struct {
		Host               string        `yaml:"host" env:"INFLUX_HOST"`
		Port               string        `yaml:"port" env:"INFLUX_PORT"`
		User               string        `yaml:"user" env:"INFLUX_USER"`
		Password           string        `yaml:"password" env:"INFLUX_PASSWORD"`
		Database           string        `yaml:"database" env:"INFLUX_DATABASE"`
		SSL                bool          `yaml:"ssl" env:"INFLUX_SSL" env-default:"true"`
		InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"INFLUX_INSECURE_SKIP_VERIFY" env-default:"false"`
		Timeout            time.Duration `yaml:"timeout" env:"INFLUX_TIMEOUT" env-default:"0s"`
	}

	PG struct {
		MaxPoolSize  int           `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"1"`
		URL          string        `yaml:"url" env:"PG_URL"`
		ConnAttempts int           `yaml:"conn_attempts" env:"PG_CONN_ATTEMPTS" env-default:"10"`
		ConnTimeout  time.Duration `yaml:"conn_timeout" env:"PG_CONN_TIMEOUT" env-default:"1s"`
	}

	GRPC struct {
		Enabled     bool   `yaml:"enabled" env:"GRPC_ENABLED" env-default:"true"`
		Port        string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
		GatewayPort string `yaml:"gateway_port" env:"GRPC_GATEWAY_PORT" env-default:"8081"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"logs.created"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}
)

func New() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		pathToConfig = defaultConfigPath
	}

	if _, err := os.Stat(pathToConfig); err == nil {
		if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	} else {
		log.WithField("path", pathToConfig).Info("Config file not found, reading environment only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverInflux:
		return nil
	case DriverPostgres:
		if c.PG.URL == "" {
			return errors.New("PG_URL is required for the postgres driver")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
}

func loadDotEnv() {
	envPath, ok := os.LookupEnv("APP_ENV_PATH")
	if !ok || envPath == "" {
		envPath = defaultEnvPath
	}

	if err := godotenv.Load(envPath); err != nil {
		log.WithField("path", envPath).Debug("No .env file loaded")
	}
}
