package handlers

import (
	"context"
	"net/http"

	"ssplt10-backend/errors"
	"ssplt10-backend/http/response"
	"ssplt10-backend/logger"
	"ssplt10-backend/models"
	"ssplt10-backend/services"
	"ssplt10-backend/utils"
)

// OrderGateway is the slice of the Razorpay client the handlers need.
type OrderGateway interface {
	CreateOrder(amountRupees float64) (map[string]interface{}, error)
	CancelPayment(ctx context.Context, paymentID string) (map[string]interface{}, error)
}

// PaymentHandler serves the payment order/verification/cancel endpoints.
// One instance is bound under both the /api/ and /api/razorpay/ prefixes.
type PaymentHandler struct {
	gateway    OrderGateway
	reconciler *services.Reconciler
	store      services.RegistrationStore
	notifier   *services.PaymentNotifier

	keyID     string
	keySecret string
	mode      string
}

func NewPaymentHandler(gateway OrderGateway, reconciler *services.Reconciler, store services.RegistrationStore,
	notifier *services.PaymentNotifier, keyID, keySecret, mode string) *PaymentHandler {
	return &PaymentHandler{
		gateway:    gateway,
		reconciler: reconciler,
		store:      store,
		notifier:   notifier,
		keyID:      keyID,
		keySecret:  keySecret,
		mode:       mode,
	}
}

// CreateOrder handles POST create-order. The gateway's order object is
// returned verbatim; nothing is persisted here.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateOrderRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Amount == nil {
		response.Error(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	order, err := h.gateway.CreateOrder(*req.Amount)
	if err != nil {
		if errors.KindOf(err) == errors.Invalid {
			response.Error(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		logger.Error("error creating razorpay order: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	if orderID, ok := order["id"].(string); ok {
		services.PublishPaymentInitiatedEvent(orderID, *req.Amount)
	}

	response.SendJSON(w, http.StatusOK, order)
}

// VerifyPayment handles POST verify-payment. The signature is always
// recomputed before anything else; on mismatch no reconciliation runs. On
// match the reconciliation outcome is logged and deliberately ignored for
// the response: the verified payment must be reported as verified no
// matter what the store did.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.VerifyPaymentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.PaymentID == "" || req.OrderID == "" || req.Signature == "" {
		response.Error(w, http.StatusBadRequest, "paymentId, orderId and signature are required")
		return
	}

	if !services.VerifySignature(req.OrderID, req.PaymentID, req.Signature, h.keySecret) {
		logger.Warn("payment signature mismatch - Order: %s, Payment: %s", req.OrderID, req.PaymentID)
		response.Error(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	outcome := h.reconciler.Reconcile(r.Context(), req.RegistrationID, req.PaymentID, req.OrderID, req.Amount)
	logger.Info("payment verified - Order: %s, Payment: %s, Registration: %q, Reconciliation: %s",
		req.OrderID, req.PaymentID, req.RegistrationID, outcome)

	services.PublishPaymentVerifiedEvent(req.RegistrationID, req.OrderID, req.PaymentID, outcome)
	h.notifyPlayer(req, outcome)

	response.SendJSON(w, http.StatusOK, models.VerifyPaymentResponse{
		Verified:       true,
		RegistrationID: req.RegistrationID,
		PaymentID:      req.PaymentID,
		OrderID:        req.OrderID,
	})
}

// notifyPlayer emails the receipt off the request goroutine. Best-effort.
func (h *PaymentHandler) notifyPlayer(req models.VerifyPaymentRequest, outcome services.ReconcileOutcome) {
	if h.notifier == nil || h.store == nil || req.RegistrationID == "" || outcome == services.ReconcileFailed {
		return
	}
	go func() {
		name, email, err := h.store.GetContact(context.Background(), req.RegistrationID)
		if err != nil {
			logger.Warn("could not load contact for receipt email - Registration: %s, Error: %v", req.RegistrationID, err)
			return
		}
		if err := h.notifier.SendReceipt(name, email, req.RegistrationID, req.PaymentID, req.OrderID, req.Amount); err != nil {
			logger.Warn("receipt email failed - Registration: %s, Error: %v", req.RegistrationID, err)
		}
	}()
}

// CancelPayment handles POST cancel: best-effort void of an authorized but
// unconfirmed payment. Provider rejections pass through with their status
// code and diagnostic body.
func (h *PaymentHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CancelPaymentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	payment, err := h.gateway.CancelPayment(r.Context(), req.PaymentID)
	if err != nil {
		var gwErr *services.GatewayError
		if errors.As(err, &gwErr) {
			response.SendJSON(w, gwErr.StatusCode, map[string]interface{}{
				"success":  false,
				"error":    gwErr.Razorpay.Description,
				"razorpay": gwErr.Razorpay,
			})
			return
		}
		if errors.KindOf(err) == errors.Invalid {
			var appErr *errors.Error
			errors.As(err, &appErr)
			response.SendJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   appErr.Message,
			})
			return
		}
		logger.Error("error cancelling payment %s: %v", req.PaymentID, err)
		response.SendJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	services.PublishPaymentCancelledEvent(req.PaymentID)

	response.SendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"payment": payment,
	})
}

// GetConfig handles GET config: the public checkout configuration. The key
// secret is never exposed here.
func (h *PaymentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response.SendJSON(w, http.StatusOK, map[string]string{
		"razorpayKeyId": h.keyID,
		"key":           h.keyID,
		"mode":          h.mode,
	})
}
