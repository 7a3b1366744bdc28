package event

import (
	"time"
)

// Event is one message on the admin live feed.
type Event struct {
	Topic string
	Type  string
	Data  any
}

const TopicOrders = "orders"

const EventTypeOrderCreated = "order_created"

// OrderCreated is the payload of EventTypeOrderCreated. It leaves out the
// customer email and phone.
type OrderCreated struct {
	OrderCode    string    `json:"order_code"`
	Type         string    `json:"type"`
	CustomerName string    `json:"customer_name"`
	TotalItems   int       `json:"total_items"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

type EventSender interface {
	Register(topic string) chan Event
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
}
