package services

import (
	"context"
	"errors"
	"testing"

	"ssplt10-backend/models"
)

type fakeStore struct {
	failures int // number of UpdatePaymentFields calls that should fail
	statuses []string
	contacts map[string][2]string
	listErr  error
}

func (f *fakeStore) UpdatePaymentFields(ctx context.Context, registrationID, paymentStatus string, amount float64, paymentID, orderID string) error {
	f.statuses = append(f.statuses, paymentStatus)
	if len(f.statuses) <= f.failures {
		return errors.New("write refused")
	}
	return nil
}

func (f *fakeStore) GetContact(ctx context.Context, registrationID string) (string, string, error) {
	c, ok := f.contacts[registrationID]
	if !ok {
		return "", "", errors.New("not found")
	}
	return c[0], c[1], nil
}

func (f *fakeStore) ListRegistrations(ctx context.Context) ([]models.PlayerRegistration, error) {
	return nil, f.listErr
}

func TestReconcile_Primary(t *testing.T) {
	store := &fakeStore{}
	r := NewReconciler(store)

	outcome := r.Reconcile(context.Background(), "r1", "pay_1", "order_1", 500)
	if outcome != Reconciled {
		t.Fatalf("outcome = %s, want reconciled", outcome)
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.PaymentStatusCompleted {
		t.Errorf("statuses written = %v, want [completed]", store.statuses)
	}
}

func TestReconcile_FallbackStatus(t *testing.T) {
	store := &fakeStore{failures: 1}
	r := NewReconciler(store)

	outcome := r.Reconcile(context.Background(), "r1", "pay_1", "order_1", 500)
	if outcome != ReconciledWithFallback {
		t.Fatalf("outcome = %s, want reconciled_with_fallback", outcome)
	}
	want := []string{models.PaymentStatusCompleted, models.PaymentStatusVerified}
	if len(store.statuses) != 2 || store.statuses[0] != want[0] || store.statuses[1] != want[1] {
		t.Errorf("statuses written = %v, want %v", store.statuses, want)
	}
}

func TestReconcile_BothWritesFail(t *testing.T) {
	store := &fakeStore{failures: 2}
	r := NewReconciler(store)

	// Storage failure must never surface as a verification failure;
	// the outcome is reported, nothing panics, nothing errors upward.
	outcome := r.Reconcile(context.Background(), "r1", "pay_1", "order_1", 500)
	if outcome != ReconcileFailed {
		t.Fatalf("outcome = %s, want failed", outcome)
	}
	if len(store.statuses) != 2 {
		t.Errorf("expected exactly one retry, got %d writes", len(store.statuses))
	}
}

func TestReconcile_SkippedWithoutRegistration(t *testing.T) {
	store := &fakeStore{}
	r := NewReconciler(store)

	outcome := r.Reconcile(context.Background(), "", "pay_1", "order_1", 500)
	if outcome != ReconcileSkipped {
		t.Fatalf("outcome = %s, want skipped", outcome)
	}
	if len(store.statuses) != 0 {
		t.Errorf("store touched for empty registration id: %v", store.statuses)
	}
}

func TestReconcile_NilStore(t *testing.T) {
	r := NewReconciler(nil)
	if outcome := r.Reconcile(context.Background(), "r1", "pay_1", "order_1", 500); outcome != ReconcileFailed {
		t.Fatalf("outcome = %s, want failed", outcome)
	}
}
