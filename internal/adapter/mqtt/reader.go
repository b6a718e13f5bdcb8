// Package mqtt consumes raw reports published to an MQTT broker.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-etl/internal/config"
	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/internal/observability"
)

const (
	qos            = 1
	connectTimeout = 10 * time.Second
	quiesceMillis  = 500
)

// Reader subscribes to a topic and buffers incoming reports in a bounded
// queue that ExtractBatch drains. It implements pipeline.BatchExtractor.
//
// Auto-ack is disabled: a message is acknowledged through its Commit
// callback, or immediately when it is dropped because the queue is full.
type Reader struct {
	broker        string
	topic         string
	clientID      string
	flushInterval time.Duration
	queue         chan domain.RawEvent
	client        pahomqtt.Client
	clock         clockwork.Clock
	metrics       *observability.Metrics
	logger        *slog.Logger

	// dropLogAt is the Unix nanosecond time of the last drop warning.
	dropLogAt atomic.Int64
}

// NewReader creates a reader for the configured broker and topic. Call
// Connect before extracting.
func NewReader(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Reader {
	return &Reader{
		broker:        cfg.MQTTBroker,
		topic:         cfg.MQTTTopic,
		clientID:      cfg.MQTTClientID,
		flushInterval: cfg.BatchFlushInterval,
		queue:         make(chan domain.RawEvent, cfg.MQTTQueueSize),
		clock:         clockwork.NewRealClock(),
		metrics:       metrics,
		logger:        logger,
	}
}

// Connect dials the broker. The subscription is made in the on-connect
// handler so that it is restored after every reconnect.
func (r *Reader) Connect() error {
	handler := r.messageHandler()
	opts := pahomqtt.NewClientOptions().
		AddBroker(r.broker).
		SetClientID(r.clientID).
		SetCleanSession(false).
		SetAutoAckDisabled(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c pahomqtt.Client) {
			r.logger.Info("connected to MQTT broker", "broker", r.broker)
			tok := c.Subscribe(r.topic, qos, handler)
			if !tok.WaitTimeout(connectTimeout) {
				r.logger.Warn("MQTT subscribe timed out", "topic", r.topic)
				return
			}
			if err := tok.Error(); err != nil {
				r.logger.Error("MQTT subscribe failed", "topic", r.topic, "error", err)
				return
			}
			r.logger.Info("subscribed to MQTT topic", "topic", r.topic, "qos", qos)
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			r.logger.Warn("MQTT connection lost, will reconnect", "error", err)
		})

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return errors.New("MQTT connect timed out")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("MQTT connect: %w", err)
	}
	r.client = client
	return nil
}

// ExtractBatch returns up to batchSize queued reports, or fewer once the
// flush interval elapses.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	timer := r.clock.NewTimer(r.flushInterval)
	defer timer.Stop()

	batch := make([]domain.RawEvent, 0, batchSize)
	for len(batch) < batchSize {
		select {
		case <-ctx.Done():
			return batch, ctx.Err()
		case raw := <-r.queue:
			batch = append(batch, raw)
		case <-timer.Chan():
			return batch, nil
		}
	}
	return batch, nil
}

// Close disconnects from the broker, giving in-flight messages a short
// quiesce period.
func (r *Reader) Close() error {
	if r.client != nil && r.client.IsConnected() {
		r.client.Disconnect(quiesceMillis)
	}
	return nil
}

// messageHandler runs on paho's goroutine and must not block. The payload is
// copied because paho reuses its buffer.
func (r *Reader) messageHandler() pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		payload := msg.Payload()
		data := make([]byte, len(payload))
		copy(data, payload)

		raw := domain.RawEvent{
			Value: data,
			Headers: map[string]string{
				"mqtt_topic": msg.Topic(),
			},
			Topic:     msg.Topic(),
			Offset:    int64(msg.MessageID()),
			Timestamp: r.clock.Now().UTC(),
			Commit: func(context.Context) error {
				msg.Ack()
				return nil
			},
		}

		select {
		case r.queue <- raw:
		default:
			msg.Ack()
			if r.metrics != nil {
				r.metrics.QueueDropped.Inc()
			}
			r.logDropRateLimited()
		}
	}
}

// logDropRateLimited logs at most one drop warning per second.
func (r *Reader) logDropRateLimited() {
	now := r.clock.Now().UnixNano()
	last := r.dropLogAt.Load()
	if now-last >= int64(time.Second) && r.dropLogAt.CompareAndSwap(last, now) {
		r.logger.Warn("MQTT queue full, message dropped", "queue_size", cap(r.queue))
	}
}
