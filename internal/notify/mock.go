package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// MockAdapter logs instead of delivering; used when no gateway is
// configured.
type MockAdapter struct {
	Logger zerolog.Logger
}

func (m MockAdapter) Send(ctx context.Context, msg Message) error {
	m.Logger.Info().
		Str("channel", msg.Channel).
		Str("text", msg.Text).
		Msg("mock notification")
	return nil
}
