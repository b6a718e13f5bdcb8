package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals emitted per decoded message.
var (
	SignalDecodeComplete = capitan.NewSignal("metar.decode.complete", "Report decoded and enriched")
	SignalDecodeFailed   = capitan.NewSignal("metar.decode.failed", "Report could not be decoded")
)

// Signal field keys.
var (
	KeyStation    = capitan.NewStringKey("station")
	KeyCategory   = capitan.NewStringKey("flight_category")
	KeyMessageKey = capitan.NewStringKey("message_key")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

func emitDecodeComplete(ctx context.Context, station, category string, duration time.Duration) {
	capitan.Emit(ctx, SignalDecodeComplete,
		KeyStation.Field(station),
		KeyCategory.Field(category),
		KeyDuration.Field(duration),
	)
}

func emitDecodeFailed(ctx context.Context, messageKey string, duration time.Duration, err error) {
	capitan.Error(ctx, SignalDecodeFailed,
		KeyMessageKey.Field(messageKey),
		KeyDuration.Field(duration),
		KeyError.Field(err),
	)
}

// LogSignals writes every decode signal to logger at debug level until the
// returned observer is closed.
func LogSignals(logger *slog.Logger) *capitan.Observer {
	return capitan.Observe(func(ctx context.Context, e *capitan.Event) {
		attrs := []any{"signal", e.Signal().Name()}
		if station, ok := KeyStation.From(e); ok {
			attrs = append(attrs, "station", station)
		}
		if category, ok := KeyCategory.From(e); ok {
			attrs = append(attrs, "flight_category", category)
		}
		if key, ok := KeyMessageKey.From(e); ok {
			attrs = append(attrs, "message_key", key)
		}
		if d, ok := KeyDuration.From(e); ok {
			attrs = append(attrs, "duration", d)
		}
		if err, ok := KeyError.From(e); ok {
			attrs = append(attrs, "error", err)
		}
		logger.DebugContext(ctx, "decode signal", attrs...)
	}, SignalDecodeComplete, SignalDecodeFailed)
}
