package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio"
	grpcAdapter "github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/mqtt"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/ultrasonic"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/distancepb"
	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/tlsconfig"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Read configuration from environment
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	log.Info().Msg("starting distance service")

	// Initialize repository
	var repo domain.ReadingRepository
	switch cfg.RepoType {
	case "sqlite":
		r, err := sqlite.NewReadingRepository(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", cfg.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewReadingRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize sensor
	var sensor ports.DistanceSensor
	switch cfg.SensorType {
	case "hcsr04":
		provider, err := gpio.Open(gpio.Options{Driver: cfg.GPIODriver, Chip: cfg.GPIOChip})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open GPIO driver")
		}
		defer provider.Close()

		s, err := ultrasonic.Open(provider, cfg.TriggerPin, cfg.EchoPin, cfg.EchoTimeout)
		if err != nil {
			log.Fatal().Err(err).Str("driver", cfg.GPIODriver).Msg("failed to set up HC-SR04")
		}
		sensor = s
		log.Info().Str("driver", cfg.GPIODriver).Msg("initialized HC-SR04 sensor")
	default:
		sensor = mock.NewFakeSensor(120.0, 5.0) // 120±5 cm (half-full tank)
		log.Info().Msg("initialized mock sensor")
	}
	defer sensor.Close()

	// Optional MQTT publishing of recorded readings
	var publishers []ports.ReadingPublisher
	if cfg.MQTTBroker != "" {
		pub, err := mqtt.NewPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if err != nil {
			log.Fatal().Err(err).Str("broker", cfg.MQTTBroker).Msg("failed to connect to MQTT broker")
		}
		defer pub.Close()
		publishers = append(publishers, pub)
	}

	// Initialize gRPC handler
	handler := grpcAdapter.NewDistanceServiceHandler(repo, sensor)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsconfig.LoadServerTLS(cfg.TLS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	// Create gRPC server
	grpcServer := grpc.NewServer(serverOpts...)
	distancepb.RegisterDistanceServiceServer(grpcServer, handler)

	// Enable gRPC reflection so grpcurl can list and describe the service
	reflection.Register(grpcServer)

	// Start gRPC server
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", cfg.Port).Msg("gRPC server listening")

	// Start server in goroutine
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Start background recorder
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := ports.NewRecorder(sensor, repo, cfg.RecordInterval, publishers...)
	recorder.SetRetention(cfg.Retention)
	go recorder.Start(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	cancel() // Stop recorder
	grpcServer.GracefulStop()

	log.Info().Msg("server stopped")
}
