package models

import "time"

// Payment status values for a player registration. Both COMPLETED and
// VERIFIED are terminal paid states: VERIFIED is the fallback written when
// the store rejects the primary value.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusVerified  = "verified"
	PaymentStatusFailed    = "failed"
)

// PlayerRegistration mirrors the Supabase player_registrations row.
// The registration form creates it; this service only transitions
// its payment fields.
type PlayerRegistration struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	PaymentAmount     float64   `json:"payment_amount"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
