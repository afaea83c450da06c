package amqp

import (
	"encoding/json"
	"time"
)

// StatementRequestMessage asks the report worker to render one user's
// monthly statement. It carries only the coordinates; the worker loads the
// transactions from the store itself.
type StatementRequestMessage struct {
	UserKey     string    `json:"user_key"`
	Year        int       `json:"year"`
	Month       int       `json:"month"` // 1-12
	RequestedAt time.Time `json:"requested_at"`
}

func NewStatementRequestMessage(userKey string, year, month int) *StatementRequestMessage {
	return &StatementRequestMessage{
		UserKey:     userKey,
		Year:        year,
		Month:       month,
		RequestedAt: time.Now(),
	}
}

func (m *StatementRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StatementRequestMessageFromJSON(data []byte) (*StatementRequestMessage, error) {
	var m StatementRequestMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
