package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ssplt10-backend/models"
	"ssplt10-backend/services"
)

type webhookStore struct {
	writes     int
	lastStatus string
	lastAmount float64
}

func (s *webhookStore) UpdatePaymentFields(ctx context.Context, registrationID, paymentStatus string, amount float64, paymentID, orderID string) error {
	s.writes++
	s.lastStatus = paymentStatus
	s.lastAmount = amount
	return nil
}

func (s *webhookStore) GetContact(ctx context.Context, registrationID string) (string, string, error) {
	return "", "", errors.New("not found")
}

func (s *webhookStore) ListRegistrations(ctx context.Context) ([]models.PlayerRegistration, error) {
	return nil, nil
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(handler *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/webhook", bytes.NewBuffer(body))
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestWebhook_PaymentCapturedReconciles(t *testing.T) {
	store := &webhookStore{}
	handler := NewWebhookHandler("whsec", services.NewReconciler(store))

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{` +
		`"id":"pay_W1","order_id":"order_W1","amount":50000,"notes":{"registration_id":"r7"}}}}}`)
	rec := postWebhook(handler, body, signBody("whsec", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if store.writes != 1 {
		t.Fatalf("writes = %d, want 1", store.writes)
	}
	if store.lastStatus != models.PaymentStatusCompleted {
		t.Errorf("status written = %q, want completed", store.lastStatus)
	}
	if store.lastAmount != 500 {
		t.Errorf("amount written = %v rupees, want 500", store.lastAmount)
	}
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	store := &webhookStore{}
	handler := NewWebhookHandler("whsec", services.NewReconciler(store))

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_W1"}}}}`)
	rec := postWebhook(handler, body, signBody("wrong-secret", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if store.writes != 0 {
		t.Errorf("store written despite bad signature")
	}
}

func TestWebhook_IgnoresOtherEvents(t *testing.T) {
	store := &webhookStore{}
	handler := NewWebhookHandler("whsec", services.NewReconciler(store))

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_W1"}}}}`)
	rec := postWebhook(handler, body, signBody("whsec", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.writes != 0 {
		t.Errorf("store written for an ignored event")
	}
}

func TestWebhook_DisabledWithoutSecret(t *testing.T) {
	handler := NewWebhookHandler("", services.NewReconciler(nil))
	rec := postWebhook(handler, []byte(`{}`), "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
