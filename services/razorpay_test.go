package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ssplt10-backend/errors"
)

func TestRupeesToPaise(t *testing.T) {
	tests := []struct {
		rupees float64
		paise  int64
	}{
		{500, 50000},
		{10, 1000},
		{10.005, 1001}, // decimal half-up at the cent boundary
		{10.004, 1000},
		{0.01, 1},
		{1870, 187000},
		{99.99, 9999},
	}

	for _, tt := range tests {
		if got := RupeesToPaise(tt.rupees); got != tt.paise {
			t.Errorf("RupeesToPaise(%v) = %d, want %d", tt.rupees, got, tt.paise)
		}
	}
}

func TestCancelIdempotencyKey_Deterministic(t *testing.T) {
	k1 := CancelIdempotencyKey("pay_ABC123")
	k2 := CancelIdempotencyKey("pay_ABC123")
	if k1 != k2 {
		t.Errorf("idempotency key not deterministic: %s vs %s", k1, k2)
	}
	if k1 == CancelIdempotencyKey("pay_ABC124") {
		t.Error("different payment ids produced the same idempotency key")
	}
}

func TestCreateOrder_InvalidAmount(t *testing.T) {
	client := NewRazorpayClient("key", "secret", "")

	for _, amount := range []float64{0, -1, -0.01} {
		_, err := client.CreateOrder(amount)
		if err == nil {
			t.Errorf("CreateOrder(%v) accepted, want error", amount)
			continue
		}
		if errors.KindOf(err) != errors.Invalid {
			t.Errorf("CreateOrder(%v) kind = %v, want Invalid", amount, errors.KindOf(err))
		}
	}
}

func TestCancelPayment_ValidationBeforeNetwork(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewRazorpayClient("key", "secret", server.URL)

	for _, paymentID := range []string{"", "abc_123", "pay"} {
		_, err := client.CancelPayment(context.Background(), paymentID)
		if err == nil {
			t.Errorf("CancelPayment(%q) accepted, want error", paymentID)
			continue
		}
		if errors.KindOf(err) != errors.Invalid {
			t.Errorf("CancelPayment(%q) kind = %v, want Invalid", paymentID, errors.KindOf(err))
		}
	}

	if hits != 0 {
		t.Errorf("gateway was called %d times before validation passed", hits)
	}
}

func TestCancelPayment_Success(t *testing.T) {
	var gotAuth, gotIdempotency string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("X-Razorpay-Idempotency")
		if r.URL.Path != "/v1/payments/pay_123/cancel" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay_123","status":"voided","amount":50000}`))
	}))
	defer server.Close()

	client := NewRazorpayClient("key_id", "key_secret", server.URL)
	payment, err := client.CancelPayment(context.Background(), "pay_123")
	if err != nil {
		t.Fatalf("CancelPayment returned error: %v", err)
	}
	if payment["status"] != "voided" {
		t.Errorf("payment status = %v, want voided", payment["status"])
	}
	if gotAuth == "" {
		t.Error("no Basic auth header sent")
	}
	if gotIdempotency != CancelIdempotencyKey("pay_123") {
		t.Errorf("idempotency header = %q, want deterministic key", gotIdempotency)
	}
}

func TestCancelPayment_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Payment is not voidable","reason":"payment_captured"}}`))
	}))
	defer server.Close()

	client := NewRazorpayClient("key", "secret", server.URL)
	_, err := client.CancelPayment(context.Background(), "pay_123")
	if err == nil {
		t.Fatal("expected gateway rejection, got nil error")
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *GatewayError, got %T: %v", err, err)
	}
	if gwErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", gwErr.StatusCode)
	}
	if gwErr.Razorpay.Description != "Payment is not voidable" {
		t.Errorf("description = %q", gwErr.Razorpay.Description)
	}
	if gwErr.Razorpay.Reason != "payment_captured" {
		t.Errorf("reason = %q", gwErr.Razorpay.Reason)
	}
}

func TestCancelPayment_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer server.Close()

	client := NewRazorpayClient("key", "secret", server.URL)
	_, err := client.CancelPayment(context.Background(), "pay_123")
	if err == nil {
		t.Fatal("expected error for unparseable body")
	}
	if errors.KindOf(err) != errors.Internal {
		t.Errorf("kind = %v, want Internal", errors.KindOf(err))
	}
}
