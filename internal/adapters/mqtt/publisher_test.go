package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
)

// fakeToken completes immediately, or never when blocked is set
type fakeToken struct {
	err     error
	blocked bool
}

func (t *fakeToken) Wait() bool                     { return !t.blocked }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.blocked }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if !t.blocked {
		close(ch)
	}
	return ch
}

// fakeClient records publishes; everything else panics via the nil embed
type fakeClient struct {
	paho.Client
	token        *fakeToken
	topic        string
	qos          byte
	payload      []byte
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.topic = topic
	c.qos = qos
	c.payload = payload.([]byte)
	return c.token
}

func (c *fakeClient) Disconnect(quiesce uint) {
	c.disconnected = true
}

func testReading() *domain.DistanceReading {
	return &domain.DistanceReading{
		ID:         7,
		DistanceCM: 42.5,
		Timestamp:  time.Unix(1700000000, 0),
	}
}

func TestPublishReading(t *testing.T) {
	client := &fakeClient{token: &fakeToken{}}
	p := newPublisher(client, "plant-monitor/distance")

	if err := p.PublishReading(context.Background(), testReading()); err != nil {
		t.Fatalf("PublishReading failed: %v", err)
	}

	if client.topic != "plant-monitor/distance" {
		t.Errorf("expected topic plant-monitor/distance, got %q", client.topic)
	}
	if client.qos != 1 {
		t.Errorf("expected QoS 1, got %d", client.qos)
	}

	var got payload
	if err := json.Unmarshal(client.payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	want := payload{ID: 7, DistanceCM: 42.5, Timestamp: 1700000000, Category: "In Range"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPublishReading_Errors(t *testing.T) {
	brokerErr := errors.New("not authorized")

	tests := []struct {
		name    string
		token   *fakeToken
		cancel  bool
		wantErr error
	}{
		{"broker rejects", &fakeToken{err: brokerErr}, false, brokerErr},
		{"context ends first", &fakeToken{blocked: true}, true, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPublisher(&fakeClient{token: tt.token}, "t")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}

			err := p.PublishReading(ctx, testReading())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClose(t *testing.T) {
	client := &fakeClient{token: &fakeToken{}}
	p := newPublisher(client, "t")

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !client.disconnected {
		t.Error("expected client to disconnect")
	}
}
