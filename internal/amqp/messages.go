package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"saldo/internal/core"
)

// EventTransactionCreated is published after a transaction is stored.
const EventTransactionCreated = "transaction.created"

// TransactionEvent carries a stored transaction to consumers. It is
// self-contained so a consumer does not need to read the store.
type TransactionEvent struct {
	Event       string    `json:"event"`
	ID          int64     `json:"id"`
	Amount      core.Money `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        string    `json:"date,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionCreated builds the event for a freshly stored transaction.
func NewTransactionCreated(tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Event:       EventTransactionCreated,
		ID:          tx.ID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Description: tx.Description,
		Date:        tx.Date,
		Timestamp:   time.Now(),
	}
}

// Transaction rebuilds the transaction the event describes.
func (m *TransactionEvent) Transaction() core.Transaction {
	return core.Transaction{
		ID:          m.ID,
		Amount:      m.Amount,
		Type:        m.Type,
		Description: m.Description,
		Date:        m.Date,
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON decodes an event and checks it is one we know.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Event != EventTransactionCreated {
		return nil, fmt.Errorf("unknown event %q", msg.Event)
	}
	return &msg, nil
}
