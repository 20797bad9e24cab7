package notify

import "context"

type Message struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient,omitempty"`
	Text      string `json:"text"`
}

// Adapter delivers operational messages through the external messaging
// gateway. Delivery rendering and retries live on the gateway side.
type Adapter interface {
	Send(ctx context.Context, msg Message) error
}
