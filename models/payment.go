package models

// CreateOrderRequest is the body of POST /create-order. Amount is a pointer
// so a missing field is distinguishable from zero.
type CreateOrderRequest struct {
	Amount *float64 `json:"amount"`
}

// VerifyPaymentRequest is the body of POST /verify-payment. Validated and
// discarded per request, never persisted.
type VerifyPaymentRequest struct {
	PaymentID      string  `json:"paymentId"`
	OrderID        string  `json:"orderId"`
	Signature      string  `json:"signature"`
	RegistrationID string  `json:"registrationId"`
	Amount         float64 `json:"amount"`
}

// CancelPaymentRequest is the body of POST /cancel.
type CancelPaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

// VerifyPaymentResponse is returned whenever the signature checks out,
// regardless of how reconciliation went.
type VerifyPaymentResponse struct {
	Verified       bool   `json:"verified"`
	RegistrationID string `json:"registrationId"`
	PaymentID      string `json:"paymentId"`
	OrderID        string `json:"orderId"`
}
