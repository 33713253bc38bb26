package shop

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced       = "OrderPlaced"
	EventOrderCanceled     = "OrderCanceled"
	EventProductsRestocked = "ProductsRestocked"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id or sweep id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	ProductIDs []string        `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
}

type OrderCanceledPayload struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	FromStatus Status `json:"from_status"`
}

type RestockedProduct struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

type ProductsRestockedPayload struct {
	Threshold     int                `json:"threshold"`
	RestockAmount int                `json:"restock_amount"`
	Products      []RestockedProduct `json:"products"`
}
