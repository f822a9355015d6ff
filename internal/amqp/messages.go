package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/core"
)

// LedgerChangedMessage announces a committed ledger mutation. It carries no
// transaction data; consumers re-read the ledger if they need it.
type LedgerChangedMessage struct {
	MessageID string    `json:"message_id"`
	Operation string    `json:"operation"`
	ID        int64     `json:"id,omitempty"`
	Revision  uint64    `json:"revision"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage builds a message for ev with a fresh message id.
func NewLedgerChangedMessage(ev core.ChangeEvent) *LedgerChangedMessage {
	ts := ev.At
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &LedgerChangedMessage{
		MessageID: uuid.NewString(),
		Operation: ev.Operation,
		ID:        ev.ID,
		Revision:  ev.Revision,
		Count:     ev.Count,
		Timestamp: ts,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON decodes a message.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
