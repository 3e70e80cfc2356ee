package services

import (
	"context"

	"ssplt10-backend/logger"
	"ssplt10-backend/models"
)

// ReconcileOutcome is the explicit result of a post-verification store
// update. The endpoint layer logs it and deliberately ignores it for the
// HTTP response: the cryptographic verification is authoritative, storage
// is best-effort.
type ReconcileOutcome int

const (
	// ReconcileSkipped means no registration id was attached to the payment.
	ReconcileSkipped ReconcileOutcome = iota
	// Reconciled means the primary "completed" status was written.
	Reconciled
	// ReconciledWithFallback means the primary write failed and the
	// "verified" fallback status was written instead.
	ReconciledWithFallback
	// ReconcileFailed means both writes failed. The payment is still paid.
	ReconcileFailed
)

func (o ReconcileOutcome) String() string {
	switch o {
	case ReconcileSkipped:
		return "skipped"
	case Reconciled:
		return "reconciled"
	case ReconciledWithFallback:
		return "reconciled_with_fallback"
	case ReconcileFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reconciler mirrors a verified payment into the registration record.
type Reconciler struct {
	store RegistrationStore
}

// NewReconciler builds a Reconciler. store may be nil when no database is
// configured; every reconcile then reports ReconcileFailed and is logged.
func NewReconciler(store RegistrationStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile marks the registration paid. It never returns an error: a
// payment that passed signature verification must be reported as verified
// to the payer no matter what the store does.
func (r *Reconciler) Reconcile(ctx context.Context, registrationID, paymentID, orderID string, amount float64) ReconcileOutcome {
	if registrationID == "" {
		// Payment verified without a registration attached.
		return ReconcileSkipped
	}

	if r.store == nil {
		logger.Error("reconciliation unavailable (no store configured) - Registration: %s, Payment: %s", registrationID, paymentID)
		return ReconcileFailed
	}

	err := r.store.UpdatePaymentFields(ctx, registrationID, models.PaymentStatusCompleted, amount, paymentID, orderID)
	if err == nil {
		logger.Info("registration reconciled - Registration: %s, Payment: %s, Order: %s", registrationID, paymentID, orderID)
		return Reconciled
	}

	// Retry exactly once with the fallback paid status. Some deployed
	// schemas constrain payment_status to an enum that lacks "completed".
	logger.Warn("primary reconcile write failed, retrying with fallback status - Registration: %s, Error: %v", registrationID, err)

	err = r.store.UpdatePaymentFields(ctx, registrationID, models.PaymentStatusVerified, amount, paymentID, orderID)
	if err == nil {
		logger.Info("registration reconciled with fallback status - Registration: %s, Payment: %s", registrationID, paymentID)
		return ReconciledWithFallback
	}

	logger.Error("reconciliation failed after fallback - Registration: %s, Payment: %s, Order: %s, Error: %v",
		registrationID, paymentID, orderID, err)
	return ReconcileFailed
}
