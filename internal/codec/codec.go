// Package codec serializes observations for the sink in one of several wire
// formats, selected by name.
package codec

import (
	"fmt"
	"strings"
)

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Format names accepted by ForFormat.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
	FormatBSON    = "bson"
)

// Formats lists the supported format names.
var Formats = []string{FormatJSON, FormatYAML, FormatMsgpack, FormatBSON}

// ForFormat returns the codec registered under name, case-insensitively.
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return JSON(), nil
	case FormatYAML:
		return YAML(), nil
	case FormatMsgpack:
		return Msgpack(), nil
	case FormatBSON:
		return BSON(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}
