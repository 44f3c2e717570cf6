package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateKey generates a random key with the given prefix.
// Format: prefix_randomhex
// Example: sf_dev_a1b2c3d4e5f6...
func GenerateKey(prefix string) (string, error) {
	b := make([]byte, 32) // 64 char hex
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// GenerateDevSecret generates an ephemeral cookie signing secret: sf_dev_xxx.
// Tokens signed with it do not survive a restart.
func GenerateDevSecret() (string, error) {
	return GenerateKey("sf_dev")
}
