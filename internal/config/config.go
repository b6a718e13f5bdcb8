package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/metar-etl/internal/codec"
)

// Source names accepted by SOURCE.
const (
	SourceKafka = "kafka"
	SourceMQTT  = "mqtt"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Source string

	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string

	MQTTBroker    string
	MQTTTopic     string
	MQTTClientID  string
	MQTTQueueSize int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// OutputFormat selects the sink codec: json, yaml, msgpack or bson.
	OutputFormat string
	// DecodeCacheSize is the number of decoded reports kept in memory.
	// Zero disables the cache.
	DecodeCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	queueSize, err := parseNonNegativeInt("MQTT_QUEUE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	if queueSize == 0 {
		return nil, errors.New("invalid MQTT_QUEUE_SIZE: must be positive")
	}

	cacheSize, err := parseNonNegativeInt("DECODE_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Source:             strings.ToLower(sharedcfg.EnvOrDefault("SOURCE", SourceKafka)),
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-metar-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "decoded-metar-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "metar-etl"),
		MQTTBroker:         sharedcfg.EnvOrDefault("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTTopic:          sharedcfg.EnvOrDefault("MQTT_TOPIC", "metar/raw"),
		MQTTClientID:       sharedcfg.EnvOrDefault("MQTT_CLIENT_ID", "metar-etl"),
		MQTTQueueSize:      queueSize,
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		OutputFormat:       strings.ToLower(sharedcfg.EnvOrDefault("OUTPUT_FORMAT", codec.FormatJSON)),
		DecodeCacheSize:    cacheSize,
	}

	switch cfg.Source {
	case SourceKafka:
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
	case SourceMQTT:
		if cfg.MQTTBroker == "" || cfg.MQTTTopic == "" {
			return nil, errors.New("MQTT_BROKER and MQTT_TOPIC are required when SOURCE=mqtt")
		}
	default:
		return nil, fmt.Errorf("invalid SOURCE %q: must be kafka or mqtt", cfg.Source)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if _, err := codec.ForFormat(cfg.OutputFormat); err != nil {
		return nil, fmt.Errorf("invalid OUTPUT_FORMAT: %w", err)
	}

	return cfg, nil
}

func parseNonNegativeInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", key)
	}
	return n, nil
}
