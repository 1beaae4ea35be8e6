package service

import (
	"crypto/rand"
	"fmt"
)

const pickupCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const pickupCodeLength = 6

// generatePickupCode returns the 6-character uppercase base-36 token the
// merchant checks at handoff.
func generatePickupCode() (string, error) {
	buf := make([]byte, pickupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	code := make([]byte, pickupCodeLength)
	for i, b := range buf {
		code[i] = pickupCodeAlphabet[int(b)%len(pickupCodeAlphabet)]
	}

	return string(code), nil
}
