package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/metar-etl/internal/codec"
	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/internal/observability"
	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// MetarTransformer implements Transformer by decoding the report text,
// enriching the observation and serializing it with the configured codec.
type MetarTransformer struct {
	decoder domain.Decoder
	codec   codec.Codec
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates a MetarTransformer.
func NewTransformer(dec domain.Decoder, c codec.Codec, metrics *observability.Metrics, logger *slog.Logger) *MetarTransformer {
	return &MetarTransformer{
		decoder: dec,
		codec:   c,
		metrics: metrics,
		logger:  logger,
	}
}

func (t *MetarTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	start := time.Now()
	obs, err := domain.ParseRawEvent(raw, t.decoder)
	elapsed := time.Since(start)
	t.metrics.DecodeDuration.Observe(elapsed.Seconds())
	if err != nil {
		t.metrics.DecodeErrors.WithLabelValues(decodeErrorKind(err)).Inc()
		emitDecodeFailed(ctx, string(raw.Key), elapsed, err)
		return domain.OutputEvent{}, err
	}

	obs = domain.EnrichObservation(obs)
	if obs.ObservedAt.IsZero() {
		t.logger.Debug("observation time unresolved", "station", obs.Station, "offset", raw.Offset)
	}

	value, err := t.codec.Marshal(obs)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("marshal observation: %w", err)
	}

	category := obs.FlightCategory
	if category == "" {
		category = "unknown"
	}
	t.metrics.FlightCategory.WithLabelValues(category).Inc()
	emitDecodeComplete(ctx, obs.Station, obs.FlightCategory, elapsed)

	return domain.OutputEvent{
		Key:   []byte(obs.ID),
		Value: value,
		Headers: map[string]string{
			"station":      obs.Station,
			"content_type": t.codec.ContentType(),
			"processed_at": obs.ProcessedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// decodeErrorKind maps a decode failure to its metric label. A report with
// several errors is labelled by the most specific one.
func decodeErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyReport):
		return "empty"
	case errors.Is(err, metar.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, metar.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, metar.ErrUnexpected):
		return "unexpected"
	default:
		return "other"
	}
}
