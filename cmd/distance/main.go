// Command distance takes one or more HC-SR04 readings and prints them in
// centimeters, one per line. With -addr it asks a running distance service
// to measure instead of driving the pins itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio/sim"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/ultrasonic"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/distancepb"
	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/tlsconfig"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	var (
		count      = flag.Int("n", 1, "number of independent readings")
		addr       = flag.String("addr", "", "measure through a running service at host:port instead of local pins")
		serverName = flag.String("server-name", "", "expected server certificate name when TLS is configured")
		driver     = flag.String("driver", cfg.GPIODriver, "GPIO driver: sim, periph, gpiod or rpio")
		chip       = flag.String("chip", cfg.GPIOChip, "GPIO chip for the gpiod driver")
		trigger    = flag.Int("trigger", cfg.TriggerPin, "trigger pin")
		echo       = flag.Int("echo", cfg.EchoPin, "echo pin")
		timeout    = flag.Duration("timeout", cfg.EchoTimeout, "bound on each echo wait")
		simCM      = flag.Float64("sim-cm", 100, "target distance for the sim driver")
	)
	flag.Parse()

	if *count < 1 {
		log.Fatal().Int("n", *count).Msg("-n must be at least 1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*count)*(2*(*timeout)+time.Second))
	defer cancel()

	var err error
	if *addr != "" {
		err = measureRemote(ctx, *addr, cfg.TLS, *serverName, *count)
	} else {
		opts := gpio.Options{Driver: *driver, Chip: *chip, Sim: sim.Target{DistanceCM: *simCM}}
		err = measureLocal(ctx, opts, *trigger, *echo, *timeout, *count)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("measurement failed")
	}
}

func measureLocal(ctx context.Context, opts gpio.Options, trigger, echo int, timeout time.Duration, n int) error {
	provider, err := gpio.Open(opts)
	if err != nil {
		return err
	}
	defer provider.Close()

	sensor, err := ultrasonic.Open(provider, trigger, echo, timeout)
	if err != nil {
		return err
	}
	defer sensor.Close()

	for i := 0; i < n; i++ {
		cm, err := sensor.ReadDistance(ctx)
		if err != nil {
			return err
		}
		fmt.Println(cm)
	}
	return nil
}

func measureRemote(ctx context.Context, addr string, files tlsconfig.Files, serverName string, n int) error {
	creds := insecure.NewCredentials()
	if files.Enabled() {
		tlsCfg, err := tlsconfig.LoadClientTLS(files, serverName)
		if err != nil {
			return err
		}
		creds = credentials.NewTLS(tlsCfg)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	client := distancepb.NewDistanceServiceClient(conn)
	for i := 0; i < n; i++ {
		reading, err := client.Measure(ctx)
		if err != nil {
			return err
		}
		fmt.Println(reading.DistanceCM)
	}
	return nil
}
