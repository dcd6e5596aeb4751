package amqp

import (
	"encoding/json"
	"time"
)

// Entity names carried in record change messages.
const (
	EntityTransaction = "transaction"
	EntityBudget      = "budget"
)

// RecordChangedMessage notifies workers that a transaction or budget was
// created, updated, or deleted. It carries only the entity, ID, and affected
// month; consumers re-read the store for current data.
type RecordChangedMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangedMessage creates a change message stamped with the current time.
func NewRecordChangedMessage(entity, id, month string) *RecordChangedMessage {
	return &RecordChangedMessage{
		Entity:    entity,
		ID:        id,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangedMessageFromJSON creates a message from JSON bytes.
func RecordChangedMessageFromJSON(data []byte) (*RecordChangedMessage, error) {
	var msg RecordChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
