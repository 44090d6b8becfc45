// Package ingest appends ledger entries announced on the payment queue.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"donorbase/internal/amqp"
	"donorbase/internal/log"
	"donorbase/internal/store"
)

// Handler validates PaymentRecorded messages and appends them to the ledger.
type Handler struct {
	ledger store.PaymentWriter
	logger *log.Logger
	sl     *log.StructuredLogger
}

func NewHandler(ledger store.PaymentWriter, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.NewFromLevel(log.ComponentIngest, "info")
	}
	return &Handler{ledger: ledger, logger: logger, sl: log.NewStructuredLogger(logger)}
}

// Handle processes one message. Messages that can never succeed (bad fields,
// unknown donation, a one-time donation) wrap amqp.ErrMalformed; storage
// failures are returned as-is so the delivery is retried.
func (h *Handler) Handle(ctx context.Context, msg *amqp.PaymentRecordedMessage) error {
	p, err := msg.Payment()
	if err != nil {
		return err
	}

	d, err := h.ledger.Donation(ctx, p.DonationID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: unknown donation %s", amqp.ErrMalformed, p.DonationID)
	}
	if err != nil {
		return fmt.Errorf("look up donation %s: %w", p.DonationID, err)
	}
	if !d.IsPaymentBased() {
		h.logger.WarnContext(ctx, "Payment for a one-time donation",
			log.FieldDonationID, d.ID,
			"type", p.Type)
		return fmt.Errorf("%w: donation %s is not paid through the ledger", amqp.ErrMalformed, d.ID)
	}

	id, err := h.ledger.AppendPayment(ctx, p)
	if err != nil {
		h.sl.LogError(ctx, "Failed to append payment", err, log.ComponentIngest, log.OpAppend,
			log.NewFields().WithPayment(p.ID, p.DonationID, p.Amount.String(), p.Currency))
		return fmt.Errorf("append payment: %w", err)
	}

	h.sl.LogPaymentIngested(ctx, id, p.DonationID, p.Amount.String(), p.Currency)
	return nil
}
