package salon

import "strconv"

const (
	TopicOrderCreated   = "salon.order.created"
	TopicOrderFinalized = "salon.order.finalized"
	TopicStockChanged   = "salon.stock.changed"
)

// Stock events are keyed by product so one product's changes stay ordered.
func ProductKey(id int64) []byte { return []byte("product:" + strconv.FormatInt(id, 10)) }

func OrderKey(id int64) []byte { return []byte("order:" + strconv.FormatInt(id, 10)) }
