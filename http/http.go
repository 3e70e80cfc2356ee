package http

import (
	"net/http"

	"ssplt10-backend/config"
	"ssplt10-backend/http/handlers"
	"ssplt10-backend/http/middleware"
	"ssplt10-backend/http/response"
)

// Prefixes under which the payment endpoint set is mounted. Both families
// share one handler implementation so their behavior cannot drift.
var apiPrefixes = []string{"/api", "/api/razorpay"}

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(cfg *config.Config, payments *handlers.PaymentHandler, webhook *handlers.WebhookHandler, export *handlers.ExportHandler) {
	cors := middleware.EnableCORS(cfg.AllowedOrigins, cfg.IsProduction())

	// Payment APIs, one handler set bound to two path prefixes
	for _, prefix := range apiPrefixes {
		http.HandleFunc(prefix+"/create-order", cors(payments.CreateOrder))
		http.HandleFunc(prefix+"/verify-payment", cors(payments.VerifyPayment))
		http.HandleFunc(prefix+"/cancel", cors(payments.CancelPayment))
		http.HandleFunc(prefix+"/config", cors(payments.GetConfig))
	}

	// Gateway-to-server webhook, not a browser surface
	http.HandleFunc("/api/razorpay/webhook", webhook.Handle)

	// League office export
	http.HandleFunc("/api/registrations/export", cors(export.Export))

	http.HandleFunc("/health", cors(func(w http.ResponseWriter, r *http.Request) {
		response.SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
}
