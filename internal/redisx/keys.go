package redisx

import "time"

const (
	// Restock sweep lock: lock:restock -> holder token.
	// Serializes concurrent sweeps so the increment is not double-applied.
	KeyRestockLock = "lock:restock"
)

var TTLRestockLock = 30 * time.Second
