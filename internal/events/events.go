package events

import "context"

// Event types
const (
	EventDonationAccepted = "donation_accepted"
)

// StreamDonations is the pub/sub channel carrying donation events to
// overlay connections.
const StreamDonations = "events:donations"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
