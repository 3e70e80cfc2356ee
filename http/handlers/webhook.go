package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"ssplt10-backend/http/response"
	"ssplt10-backend/logger"
	"ssplt10-backend/services"
)

// razorpayWebhookPayload is the envelope Razorpay posts to the webhook.
type razorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string                 `json:"id"`
				OrderID string                 `json:"order_id"`
				Amount  int64                  `json:"amount"` // paise
				Notes   map[string]interface{} `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// WebhookHandler reconciles registrations from gateway-side capture events,
// covering payments whose browser callback never reached verify-payment.
type WebhookHandler struct {
	secret     string
	reconciler *services.Reconciler
}

func NewWebhookHandler(secret string, reconciler *services.Reconciler) *WebhookHandler {
	return &WebhookHandler{secret: secret, reconciler: reconciler}
}

// Handle processes POST /api/razorpay/webhook.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.secret == "" {
		response.Error(w, http.StatusServiceUnavailable, "Webhook not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Error reading request body")
		return
	}

	if !h.verifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		logger.Warn("webhook signature verification failed")
		response.Error(w, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	var payload razorpayWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if payload.Event != "payment.captured" {
		// Acknowledge everything else so Razorpay stops retrying.
		response.SendJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	entity := payload.Payload.Payment.Entity
	registrationID, _ := entity.Notes["registration_id"].(string)
	outcome := h.reconciler.Reconcile(r.Context(), registrationID, entity.ID, entity.OrderID, float64(entity.Amount)/100)
	logger.Info("webhook payment.captured processed - Payment: %s, Registration: %q, Reconciliation: %s",
		entity.ID, registrationID, outcome)

	response.SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// verifyWebhookSignature checks the HMAC-SHA256 of the raw body under the
// webhook secret against the signature header.
func (h *WebhookHandler) verifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
