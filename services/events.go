package services

// Events published after a successful commit.
const (
	EventOrderCreated     = "order_created"
	EventOrderCancelled   = "order_cancelled"
	EventPaymentProcessed = "payment_processed"
	EventTableUpdate      = "table_update"
)

// EventPublisher receives lifecycle notifications. Implementations must not
// block; they are called outside of any transaction.
type EventPublisher interface {
	Publish(event string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
