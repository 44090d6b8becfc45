package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"donorbase/internal/core"
)

// ErrMalformed marks a message that can never be processed. Handlers wrap it
// so the consumer rejects the delivery instead of requeueing it.
var ErrMalformed = errors.New("malformed message")

// PaymentRecordedMessage announces a ledger entry recorded by a payment
// processor against an existing donation.
type PaymentRecordedMessage struct {
	MessageID   string          `json:"messageId"`
	PaymentID   string          `json:"paymentId,omitempty"`
	DonationID  string          `json:"donationId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaymentDate string          `json:"paymentDate"`
	Type        string          `json:"type"`
	Active      *bool           `json:"isActive,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewPaymentRecordedMessage wraps a payment with a fresh message id.
func NewPaymentRecordedMessage(p core.Payment) *PaymentRecordedMessage {
	active := p.Active
	return &PaymentRecordedMessage{
		MessageID:   uuid.NewString(),
		PaymentID:   p.ID,
		DonationID:  p.DonationID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		PaymentDate: p.Date.Format(time.DateOnly),
		Type:        p.Type,
		Active:      &active,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PaymentRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PaymentRecordedFromJSON decodes a delivery body. Decoding failures wrap ErrMalformed.
func PaymentRecordedFromJSON(data []byte) (*PaymentRecordedMessage, error) {
	var msg PaymentRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &msg, nil
}

// Payment converts the message into a ledger entry. A missing isActive flag
// means active; the currency label is normalized to its canonical code.
func (m *PaymentRecordedMessage) Payment() (core.Payment, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.PaymentDate))
	if err != nil {
		return core.Payment{}, fmt.Errorf("%w: payment date %q", ErrMalformed, m.PaymentDate)
	}
	p := core.Payment{
		ID:         strings.TrimSpace(m.PaymentID),
		DonationID: strings.TrimSpace(m.DonationID),
		Amount:     m.Amount,
		Currency:   core.NormalizeCurrency(m.Currency),
		Date:       date,
		Type:       strings.TrimSpace(m.Type),
		Active:     m.Active == nil || *m.Active,
	}
	if err := p.Validate(); err != nil {
		return core.Payment{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return p, nil
}
