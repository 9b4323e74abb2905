package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := sign("topsecret", "order_123", "pay_abc")
	assert.True(t, VerifySignature("topsecret", "order_123", "pay_abc", sig))
}

func TestVerifySignature_FieldTampering(t *testing.T) {
	sig := sign("topsecret", "order_123", "pay_abc")

	tests := []struct {
		name      string
		secret    string
		orderID   string
		paymentID string
		signature string
	}{
		{"wrong secret", "othersecret", "order_123", "pay_abc", sig},
		{"wrong order id", "topsecret", "order_124", "pay_abc", sig},
		{"wrong payment id", "topsecret", "order_123", "pay_abd", sig},
		{"truncated signature", "topsecret", "order_123", "pay_abc", sig[:len(sig)-1]},
		{"empty signature", "topsecret", "order_123", "pay_abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature(tt.secret, tt.orderID, tt.paymentID, tt.signature))
		})
	}
}

func TestVerifySignature_SingleBitFlip(t *testing.T) {
	sig := sign("topsecret", "order_123", "pay_abc")

	// Flip the low bit of every hex digit in turn; all must fail.
	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		flipped[i] ^= 1
		assert.False(t, VerifySignature("topsecret", "order_123", "pay_abc", string(flipped)),
			"flipped byte %d should invalidate the signature", i)
	}
}
