package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
)

const (
	connectTimeout = 10 * time.Second
	qos            = 1
	quiesceMillis  = 250
)

// Publisher sends readings to an MQTT broker
// This implements the ports.ReadingPublisher interface
type Publisher struct {
	client paho.Client
	topic  string
}

// payload is the JSON document published for each reading
type payload struct {
	ID         int64   `json:"id"`
	DistanceCM float64 `json:"distance_cm"`
	Timestamp  int64   `json:"timestamp"`
	Category   string  `json:"category"`
}

// NewPublisher connects to broker (e.g. "tcp://localhost:1883") and
// returns a Publisher for topic
func NewPublisher(broker, clientID, topic string) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warn().Err(err).Str("broker", broker).Msg("lost MQTT connection")
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}

	log.Info().Str("broker", broker).Str("topic", topic).Msg("connected to MQTT broker")

	return newPublisher(client, topic), nil
}

func newPublisher(client paho.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// PublishReading publishes one reading with QoS 1 and waits for the broker
// to acknowledge it or ctx to end
func (p *Publisher) PublishReading(ctx context.Context, reading *domain.DistanceReading) error {
	body, err := encodeReading(reading)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, qos, false, body)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", p.topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker
func (p *Publisher) Close() error {
	p.client.Disconnect(quiesceMillis)
	return nil
}

func encodeReading(r *domain.DistanceReading) ([]byte, error) {
	body, err := json.Marshal(payload{
		ID:         r.ID,
		DistanceCM: r.DistanceCM,
		Timestamp:  r.Timestamp.Unix(),
		Category:   r.RangeCategory(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode reading: %w", err)
	}
	return body, nil
}
