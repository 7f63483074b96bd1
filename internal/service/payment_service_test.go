package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: sign("order_1", "pay_1", secret),
			want:      true,
		},
		{
			name:      "wrong secret",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: sign("order_1", "pay_1", "other_secret"),
			want:      false,
		},
		{
			name:      "signature for another order",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: sign("order_2", "pay_1", secret),
			want:      false,
		},
		{
			name:      "empty signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: "",
			want:      false,
		},
		{
			name:      "garbage signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: "not-hex-at-all",
			want:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(tt.orderID, tt.paymentID, tt.signature, secret))
		})
	}
}
