package shop

const (
	TopicOrderPlaced       = "order.placed"
	TopicOrderCanceled     = "order.canceled"
	TopicProductsRestocked = "product.restocked"
)

// Partition key = order_id, so all events for one order stay ordered.
func PartitionKey(id string) []byte { return []byte(id) }
