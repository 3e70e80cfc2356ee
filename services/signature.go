package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks the checkout callback signature: HMAC-SHA256 of
// "orderID|paymentID" under the key secret, hex encoded. This is the single
// gate before a registration may be marked paid.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	// Compare signatures (constant-time comparison)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment computes the signature Razorpay would send for an
// order/payment pair. Used by tests and the checkout simulator.
func SignPayment(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}
