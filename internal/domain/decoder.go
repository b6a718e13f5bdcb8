package domain

import "github.com/couchcryptid/metar-etl/pkg/metar"

// Decoder turns report text into a decoded report.
type Decoder interface {
	Decode(text string) (metar.Report, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(text string) (metar.Report, error)

// Decode calls f(text).
func (f DecoderFunc) Decode(text string) (metar.Report, error) {
	return f(text)
}

// MetarDecoder decodes with metar.Parse directly.
var MetarDecoder Decoder = DecoderFunc(metar.Parse)
