// Package gateway wraps the Razorpay API behind the small surface the
// checkout package needs. The client is constructed once at startup and
// injected; nothing here holds mutable state beyond the SDK client.
package gateway

import (
	"context"
	"errors"

	razorpay "github.com/razorpay/razorpay-go"
)

type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateIntent mints a gateway order for the given amount in minor
// currency units and returns its id. The SDK does not take a context;
// callers bound the call with their own timeout around the HTTP layer.
func (r *Razorpay) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}

	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", errors.New("gateway returned order without id")
	}
	return id, nil
}
