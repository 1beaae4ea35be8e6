package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifyWebhookSignature checks the x-signature header Mercado Pago sends
// with every notification. The header carries "ts=<ts>,v1=<hmac>" and the
// HMAC-SHA256 is computed over the manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" with the webhook secret.
func VerifyWebhookSignature(secret, signatureHeader, requestID, dataID string) error {
	if secret == "" {
		return fmt.Errorf("webhook secret not configured")
	}
	if signatureHeader == "" {
		return fmt.Errorf("missing x-signature header")
	}

	var ts, v1 string
	for _, part := range strings.Split(signatureHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("malformed x-signature header")
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("signature mismatch")
	}

	return nil
}
