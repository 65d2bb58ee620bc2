package domain

import (
	"fmt"
	"time"
)

// PaymentLeg one of the two installments of a booking
type PaymentLeg string

const (
	LegDeposit   PaymentLeg = "deposit"
	LegRemainder PaymentLeg = "remainder"
)

// PaymentRecordStatus lifecycle of a single payment leg
type PaymentRecordStatus string

const (
	PaymentInitiated  PaymentRecordStatus = "initiated"
	PaymentAuthorized PaymentRecordStatus = "authorized"
	PaymentCaptured   PaymentRecordStatus = "captured"
	PaymentFailed     PaymentRecordStatus = "failed"
	PaymentRefunded   PaymentRecordStatus = "refunded"
)

// PaymentRecord is one payment leg of a booking. At most one captured
// record may exist per (booking, leg); the idempotency key enforces this.
type PaymentRecord struct {
	ID             int64
	BookingID      int64
	Leg            PaymentLeg
	AmountCents    int64
	RefundedCents  int64
	IntentID       string
	Status         PaymentRecordStatus
	IdempotencyKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentIdempotencyKey derives the stable idempotency key of a payment leg.
// Retries of the same logical payment always produce the same key.
func PaymentIdempotencyKey(bookingID int64, leg PaymentLeg) string {
	return fmt.Sprintf("booking-%d-%s", bookingID, leg)
}

// IsCaptured returns true if the leg was successfully charged
func (p *PaymentRecord) IsCaptured() bool {
	return p.Status == PaymentCaptured || p.Status == PaymentRefunded
}

// RefundableCents returns how much of the captured amount can still be refunded
func (p *PaymentRecord) RefundableCents() int64 {
	if !p.IsCaptured() {
		return 0
	}
	left := p.AmountCents - p.RefundedCents
	if left < 0 {
		return 0
	}
	return left
}
