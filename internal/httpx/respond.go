package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/kafka"
	"github.com/storekit/ecomm-api/internal/shop"
)

// Publisher is the producer surface handlers need; satisfied by
// *kafka.Producer, mocked in tests.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the two domain error kinds onto their status codes and
// keeps everything else a logged, opaque 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var v *shop.ValidationError
	switch {
	case errors.As(err, &v):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": v.Fields})
	case errors.Is(err, shop.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

// publishEvent wraps a payload in the versioned envelope and hands it to the
// producer. Fire-and-forget: a publish failure never fails the request.
func publishEvent(p Publisher, service, eventType, traceID, correlationID string, payload any) {
	if p == nil {
		return
	}
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      service,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       kafka.MustMarshal(payload),
	}
	p.Publish(shop.PartitionKey(correlationID), kafka.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
