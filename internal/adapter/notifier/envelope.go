// Package notifier delivers ledger notification events to the message table,
// a Redis stream and Kafka.
package notifier

import (
	"encoding/json"
	"fmt"

	"bank-ledger/internal/domain/notification"
)

// envelope is the wire shape shared by the stream and Kafka sinks.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encode(ev notification.Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("notifier: marshal event: %w", err)
	}
	b, err := json.Marshal(envelope{Type: string(ev.Kind), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("notifier: marshal envelope: %w", err)
	}
	return b, nil
}
