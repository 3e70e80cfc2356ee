package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ssplt10-backend/errors"
	"ssplt10-backend/logger"

	"github.com/razorpay/razorpay-go"
)

// RazorpayError is the diagnostic body Razorpay returns on a rejected call.
type RazorpayError struct {
	Code        string                 `json:"code"`
	Description string                 `json:"description"`
	Reason      string                 `json:"reason"`
	Field       string                 `json:"field"`
	Source      string                 `json:"source"`
	Step        string                 `json:"step"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// GatewayError carries a provider rejection through to the endpoint layer
// with its original status code and error body, so callers keep the
// provider's diagnostic detail.
type GatewayError struct {
	StatusCode int
	Razorpay   RazorpayError
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("razorpay rejected the request (%d): %s", e.StatusCode, e.Razorpay.Description)
}

// RazorpayClient wraps the gateway's order-create and payment-cancel
// operations. Constructed once at startup, read-only afterwards.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	sdk        *razorpay.Client
	httpClient *http.Client
}

// NewRazorpayClient builds a gateway client from credentials. baseURL
// defaults to the live API and is overridable so tests can point at a mock.
func NewRazorpayClient(keyID, keySecret, baseURL string) *RazorpayClient {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		sdk:       razorpay.NewClient(keyID, keySecret),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RupeesToPaise converts a rupee amount to paise with decimal half-up
// rounding. The amount arrives as a JSON number, so the binary float is
// first rendered back to its shortest decimal form: 10.005 must round to
// 1001 even though its float64 value sits just below the boundary.
func RupeesToPaise(amount float64) int64 {
	r := new(big.Rat)
	r.SetString(strconv.FormatFloat(amount, 'f', -1, 64))
	r.Mul(r, big.NewRat(100, 1))

	// floor((2n + d) / 2d) is round-half-up for non-negative n/d
	num := new(big.Int).Mul(r.Num(), big.NewInt(2))
	num.Add(num, r.Denom())
	den := new(big.Int).Mul(r.Denom(), big.NewInt(2))
	return new(big.Int).Quo(num, den).Int64()
}

// CreateOrder creates a Razorpay order for the given rupee amount and
// returns the gateway's order object verbatim. Nothing is persisted; the
// gateway stays the source of truth for order state.
func (c *RazorpayClient) CreateOrder(amountRupees float64) (map[string]interface{}, error) {
	if math.IsNaN(amountRupees) || math.IsInf(amountRupees, 0) || amountRupees <= 0 {
		return nil, errors.E(errors.Invalid, "invalid amount: must be greater than 0")
	}

	data := map[string]interface{}{
		"amount":          RupeesToPaise(amountRupees), // paise
		"currency":        "INR",
		"receipt":         fmt.Sprintf("rcpt_%d", time.Now().UnixNano()),
		"payment_capture": 1,
	}

	order, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, errors.E(errors.Gateway, "error creating razorpay order", err)
	}

	return order, nil
}

// ValidatePaymentID rejects anything that is not a pay_-prefixed id before
// any network call is made.
func ValidatePaymentID(paymentID string) error {
	if paymentID == "" {
		return errors.E(errors.Invalid, "paymentId is required")
	}
	if !strings.HasPrefix(paymentID, "pay_") {
		return errors.E(errors.Invalid, "invalid paymentId: expected a pay_ prefixed id")
	}
	return nil
}

// CancelIdempotencyKey derives the idempotency key for a cancel call.
// Deterministic per payment id, so repeated cancel attempts are safe.
func CancelIdempotencyKey(paymentID string) string {
	sum := sha256.Sum256([]byte("cancel|" + paymentID))
	return hex.EncodeToString(sum[:])
}

// CancelPayment voids an authorized payment. Provider rejections come back
// as *GatewayError with the original status and body; network and parse
// failures are internal errors and are not retried here. The idempotency
// key lets the caller retry safely.
func (c *RazorpayClient) CancelPayment(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	if err := ValidatePaymentID(paymentID); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/payments/%s/cancel", c.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, errors.E(errors.Internal, "error building cancel request", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Razorpay-Idempotency", CancelIdempotencyKey(paymentID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.E(errors.Internal, "razorpay cancel request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.E(errors.Internal, "error reading razorpay response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var rejection struct {
			Error RazorpayError `json:"error"`
		}
		if err := json.Unmarshal(body, &rejection); err != nil {
			logger.Error("unparseable razorpay error body (status %d): %s", resp.StatusCode, string(body))
			return nil, errors.E(errors.Internal, "error parsing razorpay error response", err)
		}
		logger.Warn("razorpay cancel rejected - Payment: %s, Status: %d, Code: %s, Description: %s",
			paymentID, resp.StatusCode, rejection.Error.Code, rejection.Error.Description)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Razorpay: rejection.Error}
	}

	var payment map[string]interface{}
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, errors.E(errors.Internal, "error parsing razorpay response", err)
	}

	logger.Info("razorpay payment voided - Payment: %s, Status: %v", paymentID, payment["status"])
	return payment, nil
}
