package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	AccountCreated = "account.created"
	PowerGranted   = "poa.granted"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	GrantEventsStream   = "poa.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// DecodeData re-decodes the loosely typed Data payload into out.
func (e Event) DecodeData(out any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to re-encode %s payload: %w", e.Type, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Account events
type AccountCreatedEvent struct {
	AccountNumber     string  `json:"accountNumber"`
	AccountHolderName string  `json:"accountHolderName"`
	AccountType       string  `json:"accountType"`
	Balance           float64 `json:"balance"`
}

// Grant events
type PowerGrantedEvent struct {
	GrantID       string `json:"grantId"`
	GrantorName   string `json:"grantorName"`
	GranteeName   string `json:"granteeName"`
	Authorization string `json:"authorization"`
	AccountNumber string `json:"accountNumber"`
}
