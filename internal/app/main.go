package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Camping-RSO/camping-logs-ms/internal/broker"
	kafkabroker "github.com/Camping-RSO/camping-logs-ms/internal/broker/kafka"
	"github.com/Camping-RSO/camping-logs-ms/internal/config"
	logginghelper "github.com/Camping-RSO/camping-logs-ms/internal/controller/common/logging"
	grpcrest "github.com/Camping-RSO/camping-logs-ms/internal/controller/grpc/rest"
	grpcv1 "github.com/Camping-RSO/camping-logs-ms/internal/controller/grpc/v1"
	httpv1 "github.com/Camping-RSO/camping-logs-ms/internal/controller/http/v1"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	"github.com/Camping-RSO/camping-logs-ms/pkg/grpcserver"
	"github.com/Camping-RSO/camping-logs-ms/pkg/httpserver"
	"github.com/Camping-RSO/camping-logs-ms/pkg/logger"
	gw "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	log.WithFields(log.Fields{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
		"driver":  cfg.Store.Driver,
	}).Info("Logger has been set up")

	// Store
	repositories, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer closeStore()

	// Producer
	var brokerProducer broker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		log.Infof("Publishing created logs to kafka topic %q", cfg.Kafka.Topic)
		kafkaProducer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer kafkaProducer.Close()
		brokerProducer = kafkaProducer
	}

	// Services
	metricsCnt := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       metricsCnt,
		BrokerProducer: brokerProducer,
	}
	services := service.NewServices(deps)

	// GraphQL server
	log.Infof("Starting GraphQL server...")
	log.Debugf("GraphQL server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	metrics.ConfigureMiddleware(apiHandler)
	if err := httpv1.ConfigureRouter(apiHandler, services, metricsCnt, cfg.HTTP.Debug); err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	apiServer := httpserver.New(apiHandler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
	)

	// gRPC Server
	var (
		grpcServer    *grpcserver.Server
		gatewayServer *httpserver.Server
	)
	if cfg.GRPC.Enabled {
		log.Infof("Starting gRPC server...")
		log.Debugf("gRPC server port: %s", cfg.GRPC.Port)
		registerFun := grpcv1.RegisterServices(services, metricsCnt)
		grpcServer, err = grpcserver.New(registerFun,
			grpcserver.WithPort(cfg.GRPC.Port),
			grpcserver.WithUnaryInterceptors(logginghelper.UnaryServerInterceptor()),
		)
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}

		// gRPC-Gateway
		log.Infof("Starting gRPC gateway...")
		log.Debugf("gRPC gateway port: %s", cfg.GRPC.GatewayPort)
		conn, err := grpcrest.Dial(cfg.GRPC.Port)
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		defer conn.Close()
		gatewayMux := gw.NewServeMux()
		if err := grpcrest.RegisterServices(context.Background(), gatewayMux, conn); err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		gatewayServer = httpserver.New(gatewayMux, httpserver.Port(cfg.GRPC.GatewayPort))
	}

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Metrics server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	log.Info("Configuring graceful shutdown...")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-grpcNotify(grpcServer):
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-httpNotify(gatewayServer):
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	shutdownApp(grpcServer, apiServer, metricsServer, gatewayServer)
}

// grpcNotify and httpNotify return a nil channel for a disabled server, so select never picks it.
func grpcNotify(s *grpcserver.Server) <-chan error {
	if s == nil {
		return nil
	}
	return s.Notify()
}

func httpNotify(s *httpserver.Server) <-chan error {
	if s == nil {
		return nil
	}
	return s.Notify()
}

func shutdownApp(grpcServer *grpcserver.Server, httpServers ...*httpserver.Server) {
	log.Info("Shutting down...")
	for _, s := range httpServers {
		if s == nil {
			continue
		}
		if err := s.Shutdown(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
	if grpcServer != nil {
		grpcServer.Shutdown()
	}
}
