package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sign(secret, requestID, dataID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "shhh"
	v1 := sign(secret, "req-abc", "12345", "1724800000")
	header := fmt.Sprintf("ts=1724800000,v1=%s", v1)

	require.NoError(t, VerifyWebhookSignature(secret, header, "req-abc", "12345"))
}

func TestVerifyWebhookSignatureHandlesSpacing(t *testing.T) {
	secret := "shhh"
	v1 := sign(secret, "req-abc", "12345", "1724800000")
	header := fmt.Sprintf("ts=1724800000, v1=%s", v1)

	require.NoError(t, VerifyWebhookSignature(secret, header, "req-abc", "12345"))
}

func TestVerifyWebhookSignatureMismatch(t *testing.T) {
	secret := "shhh"
	v1 := sign("wrong-secret", "req-abc", "12345", "1724800000")
	header := fmt.Sprintf("ts=1724800000,v1=%s", v1)

	require.Error(t, VerifyWebhookSignature(secret, header, "req-abc", "12345"))
}

func TestVerifyWebhookSignatureTamperedData(t *testing.T) {
	secret := "shhh"
	v1 := sign(secret, "req-abc", "12345", "1724800000")
	header := fmt.Sprintf("ts=1724800000,v1=%s", v1)

	require.Error(t, VerifyWebhookSignature(secret, header, "req-abc", "99999"))
}

func TestVerifyWebhookSignatureMalformed(t *testing.T) {
	require.Error(t, VerifyWebhookSignature("shhh", "", "req", "1"))
	require.Error(t, VerifyWebhookSignature("shhh", "garbage", "req", "1"))
	require.Error(t, VerifyWebhookSignature("shhh", "ts=123", "req", "1"))
	require.Error(t, VerifyWebhookSignature("", "ts=1,v1=aa", "req", "1"))
}
