package amqp

import (
	"encoding/json"
	"time"
)

// SaleSyncMessage carries just the row id of a sale that needs mirroring.
// The worker fetches the full record from the database before syncing.
type SaleSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSaleSyncMessage(id int64) *SaleSyncMessage {
	return &SaleSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *SaleSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SaleSyncMessageFromJSON(data []byte) (*SaleSyncMessage, error) {
	var msg SaleSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
