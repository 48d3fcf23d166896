package order

import "time"

// Event is an entry in the order history shown to customer service.
type Event struct {
	Title     string
	Note      string
	CreatedAt time.Time
}
