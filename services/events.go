package services

import (
	"time"

	"ssplt10-backend/logger"
)

// Payment lifecycle events published to Kafka. All best-effort: publishing
// runs off the request goroutine and never affects an HTTP response.

// PublishPaymentInitiatedEvent announces a freshly created order.
func PublishPaymentInitiatedEvent(orderID string, amountRupees float64) {
	go func() {
		evt := map[string]interface{}{
			"event":    "payment.initiated",
			"order_id": orderID,
			"amount":   amountRupees,
			"currency": "INR",
			"status":   "PENDING",
			"ts":       time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish("order-"+orderID, evt); err != nil {
			logger.Warn("failed to publish payment.initiated event: %v", err)
		}
	}()
}

// PublishPaymentVerifiedEvent announces a signature-verified payment and
// the outcome of its reconciliation.
func PublishPaymentVerifiedEvent(registrationID, orderID, paymentID string, outcome ReconcileOutcome) {
	go func() {
		evt := map[string]interface{}{
			"event":           "payment.verified",
			"registration_id": registrationID,
			"order_id":        orderID,
			"payment_id":      paymentID,
			"reconciliation":  outcome.String(),
			"ts":              time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish("payment-"+paymentID, evt); err != nil {
			logger.Warn("failed to publish payment.verified event: %v", err)
		}
	}()
}

// PublishPaymentCancelledEvent announces a voided payment.
func PublishPaymentCancelledEvent(paymentID string) {
	go func() {
		evt := map[string]interface{}{
			"event":      "payment.cancelled",
			"payment_id": paymentID,
			"status":     "VOIDED",
			"ts":         time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish("payment-"+paymentID, evt); err != nil {
			logger.Warn("failed to publish payment.cancelled event: %v", err)
		}
	}()
}
