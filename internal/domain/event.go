package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source transport.
// Value carries the report text, optionally prefixed by a feed date line.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Wind is the flattened wind group of an observation.
type Wind struct {
	Calm         bool   `json:"calm,omitempty" yaml:"calm,omitempty" msgpack:"calm,omitempty" bson:"calm,omitempty"`
	Variable     bool   `json:"variable,omitempty" yaml:"variable,omitempty" msgpack:"variable,omitempty" bson:"variable,omitempty"`
	DirectionDeg *int   `json:"direction_deg,omitempty" yaml:"direction_deg,omitempty" msgpack:"direction_deg,omitempty" bson:"direction_deg,omitempty"`
	Speed        *int   `json:"speed,omitempty" yaml:"speed,omitempty" msgpack:"speed,omitempty" bson:"speed,omitempty"`
	Gust         *int   `json:"gust,omitempty" yaml:"gust,omitempty" msgpack:"gust,omitempty" bson:"gust,omitempty"`
	Unit         string `json:"unit" yaml:"unit" msgpack:"unit" bson:"unit"`
	VaryingFrom  *int   `json:"varying_from,omitempty" yaml:"varying_from,omitempty" msgpack:"varying_from,omitempty" bson:"varying_from,omitempty"`
	VaryingTo    *int   `json:"varying_to,omitempty" yaml:"varying_to,omitempty" msgpack:"varying_to,omitempty" bson:"varying_to,omitempty"`
}

// CloudLayer is one decoded cloud layer. Heights are in feet.
type CloudLayer struct {
	Cover    string `json:"cover,omitempty" yaml:"cover,omitempty" msgpack:"cover,omitempty" bson:"cover,omitempty"`
	HeightFt *int   `json:"height_ft,omitempty" yaml:"height_ft,omitempty" msgpack:"height_ft,omitempty" bson:"height_ft,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty" bson:"type,omitempty"`
}

// Observation is the flattened, serializable form of a decoded report that is
// published to the sink. Masked values are nil pointers.
type Observation struct {
	ID         string    `json:"id" yaml:"id" msgpack:"id" bson:"_id"`
	Station    string    `json:"station" yaml:"station" msgpack:"station" bson:"station"`
	ReportType string    `json:"report_type,omitempty" yaml:"report_type,omitempty" msgpack:"report_type,omitempty" bson:"report_type,omitempty"`
	Kind       string    `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty" bson:"kind,omitempty"`
	ObservedAt time.Time `json:"observed_at" yaml:"observed_at" msgpack:"observed_at" bson:"observed_at"`
	TimeBucket time.Time `json:"time_bucket" yaml:"time_bucket" msgpack:"time_bucket" bson:"time_bucket"`
	Raw        string    `json:"raw" yaml:"raw" msgpack:"raw" bson:"raw"`
	Canonical  string    `json:"canonical" yaml:"canonical" msgpack:"canonical" bson:"canonical"`

	Wind                 Wind         `json:"wind" yaml:"wind" msgpack:"wind" bson:"wind"`
	VisibilityM          *int         `json:"visibility_m,omitempty" yaml:"visibility_m,omitempty" msgpack:"visibility_m,omitempty" bson:"visibility_m,omitempty"`
	CAVOK                bool         `json:"cavok,omitempty" yaml:"cavok,omitempty" msgpack:"cavok,omitempty" bson:"cavok,omitempty"`
	RVR                  []string     `json:"rvr,omitempty" yaml:"rvr,omitempty" msgpack:"rvr,omitempty" bson:"rvr,omitempty"`
	Weather              []string     `json:"weather,omitempty" yaml:"weather,omitempty" msgpack:"weather,omitempty" bson:"weather,omitempty"`
	CloudState           string       `json:"cloud_state,omitempty" yaml:"cloud_state,omitempty" msgpack:"cloud_state,omitempty" bson:"cloud_state,omitempty"`
	Clouds               []CloudLayer `json:"clouds,omitempty" yaml:"clouds,omitempty" msgpack:"clouds,omitempty" bson:"clouds,omitempty"`
	VerticalVisibilityFt *int         `json:"vertical_visibility_ft,omitempty" yaml:"vertical_visibility_ft,omitempty" msgpack:"vertical_visibility_ft,omitempty" bson:"vertical_visibility_ft,omitempty"`
	CeilingFt            *int         `json:"ceiling_ft,omitempty" yaml:"ceiling_ft,omitempty" msgpack:"ceiling_ft,omitempty" bson:"ceiling_ft,omitempty"`
	TemperatureC         *float64     `json:"temperature_c,omitempty" yaml:"temperature_c,omitempty" msgpack:"temperature_c,omitempty" bson:"temperature_c,omitempty"`
	DewpointC            *float64     `json:"dewpoint_c,omitempty" yaml:"dewpoint_c,omitempty" msgpack:"dewpoint_c,omitempty" bson:"dewpoint_c,omitempty"`
	PressureHPa          *float64     `json:"pressure_hpa,omitempty" yaml:"pressure_hpa,omitempty" msgpack:"pressure_hpa,omitempty" bson:"pressure_hpa,omitempty"`
	ColourCode           string       `json:"colour_code,omitempty" yaml:"colour_code,omitempty" msgpack:"colour_code,omitempty" bson:"colour_code,omitempty"`
	RecentWeather        []string     `json:"recent_weather,omitempty" yaml:"recent_weather,omitempty" msgpack:"recent_weather,omitempty" bson:"recent_weather,omitempty"`
	Trends               []string     `json:"trends,omitempty" yaml:"trends,omitempty" msgpack:"trends,omitempty" bson:"trends,omitempty"`
	Remarks              string       `json:"remarks,omitempty" yaml:"remarks,omitempty" msgpack:"remarks,omitempty" bson:"remarks,omitempty"`

	FlightCategory string    `json:"flight_category,omitempty" yaml:"flight_category,omitempty" msgpack:"flight_category,omitempty" bson:"flight_category,omitempty"`
	ProcessedAt    time.Time `json:"processed_at" yaml:"processed_at" msgpack:"processed_at" bson:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
