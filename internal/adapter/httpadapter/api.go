package httpadapter

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/internal/observability"
	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// maxReportBytes bounds request bodies. Real reports stay well under 1 KiB.
const maxReportBytes = 16 << 10

// Outcome labels for the api_requests_total metric.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type decodeAPI struct {
	decoder domain.Decoder
	metrics *observability.Metrics
	logger  *slog.Logger
}

// errorDetail is one entry of a 422 response.
type errorDetail struct {
	Offset   int      `json:"offset"`
	Length   int      `json:"length"`
	Kind     string   `json:"kind"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found"`
	Message  string   `json:"message"`
	Snippet  string   `json:"snippet"`
}

type errorResponse struct {
	Error   string        `json:"error"`
	Details []errorDetail `json:"details,omitempty"`
}

// handleDecode decodes the report in the request body and responds with the
// enriched observation. The observation day is resolved against the current
// time.
func (a *decodeAPI) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, ok := a.readBody(w, r, "decode")
	if !ok {
		return
	}

	obs, err := domain.ParseRawEvent(domain.RawEvent{Value: body}, a.decoder)
	if err != nil {
		a.writeDecodeError(w, "decode", err)
		return
	}

	a.metrics.APIRequests.WithLabelValues("decode", outcomeOK).Inc()
	sharedobs.WriteJSON(w, http.StatusOK, domain.EnrichObservation(obs))
}

// handleFormat responds with the canonical text of the report in the request
// body.
func (a *decodeAPI) handleFormat(w http.ResponseWriter, r *http.Request) {
	body, ok := a.readBody(w, r, "format")
	if !ok {
		return
	}

	text := domain.ReportText(body)
	if text == "" {
		a.writeDecodeError(w, "format", domain.ErrEmptyReport)
		return
	}
	report, err := a.decoder.Decode(text)
	if err != nil {
		a.writeDecodeError(w, "format", err)
		return
	}

	a.metrics.APIRequests.WithLabelValues("format", outcomeOK).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, metar.Format(report)+"\n") //nolint:errcheck // client went away
}

func (a *decodeAPI) readBody(w http.ResponseWriter, r *http.Request, endpoint string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxReportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.metrics.APIRequests.WithLabelValues(endpoint, outcomeInvalid).Inc()
			sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "report too large"})
			return nil, false
		}
		a.metrics.APIRequests.WithLabelValues(endpoint, outcomeError).Inc()
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "read body: " + err.Error()})
		return nil, false
	}
	return body, true
}

func (a *decodeAPI) writeDecodeError(w http.ResponseWriter, endpoint string, err error) {
	var parseErrs metar.Errors
	switch {
	case errors.Is(err, domain.ErrEmptyReport):
		a.metrics.APIRequests.WithLabelValues(endpoint, outcomeInvalid).Inc()
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &parseErrs):
		a.metrics.APIRequests.WithLabelValues(endpoint, outcomeInvalid).Inc()
		sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Details: toErrorDetails(parseErrs),
		})
	default:
		a.logger.Error("decode failed", "endpoint", endpoint, "error", err)
		a.metrics.APIRequests.WithLabelValues(endpoint, outcomeError).Inc()
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toErrorDetails(errs metar.Errors) []errorDetail {
	out := make([]errorDetail, 0, len(errs))
	for _, e := range errs {
		out = append(out, errorDetail{
			Offset:   e.Offset,
			Length:   e.Length,
			Kind:     e.Kind.String(),
			Expected: e.Expected,
			Found:    e.Found,
			Message:  e.Error(),
			Snippet:  e.Snippet(),
		})
	}
	return out
}
