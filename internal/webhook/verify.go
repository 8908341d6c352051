package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Verified is a Request whose signature matched. Only Authenticate produces one.
type Verified struct {
	req Request
}

func (v Verified) Request() Request {
	return v.req
}

// Authenticate checks the request signature against secret.
func Authenticate(req Request, secret string) (Verified, error) {
	if !VerifyShopifyWebhook(req.Body, req.Signature, secret) {
		return Verified{}, authenticationError("webhook: invalid signature")
	}
	return Verified{req: req}, nil
}

// VerifyShopifyWebhook verifies the webhook signature using the shared secret.
// Signature header is base64(HMAC_SHA256(body)).
func VerifyShopifyWebhook(body []byte, hmacHeader string, secret string) bool {
	if hmacHeader == "" || secret == "" {
		return false
	}

	return hmac.Equal([]byte(Sign(body, secret)), []byte(hmacHeader))
}

// Sign returns the header value Shopify would send for body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
