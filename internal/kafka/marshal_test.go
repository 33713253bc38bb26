package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/ecomm-api/internal/shop"
)

func TestUnwrapPayloadRoundTrip(t *testing.T) {
	payload := shop.OrderCanceledPayload{OrderID: "o-1", CustomerID: "c-1", FromStatus: shop.StatusPending}
	raw := MustMarshal(payload)

	got, err := UnwrapPayload[shop.OrderCanceledPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = UnwrapPayload[shop.OrderCanceledPayload]([]byte(`not json`))
	assert.Error(t, err)
}
