package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment computes the gateway callback signature:
// hex(HMAC-SHA256(secret, "<gatewayOrderId>|<paymentId>")).
func SignPayment(gatewayOrderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the client-supplied signature matches
// the expected digest, using a constant-time comparison.
func VerifySignature(gatewayOrderID, paymentID, signature, secret string) bool {
	expected := SignPayment(gatewayOrderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
