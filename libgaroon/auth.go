package libgaroon

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeBasicAuth builds the X-Cybozu-Authorization value from a login name and password
func EncodeBasicAuth(login, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(login + ":" + password))
}

// DecodeBasicAuth checks a stored credential and returns the login name it carries
func DecodeBasicAuth(credential string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(credential))
	if err != nil {
		return "", fmt.Errorf("basic auth is not valid base64: %w", err)
	}

	login, _, ok := strings.Cut(string(raw), ":")
	if !ok || login == "" {
		return "", fmt.Errorf("basic auth must encode 'login-name:password'")
	}

	return login, nil
}

// MaskCredential hides all but the first few characters of a secret for display
func MaskCredential(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return secret[:visible] + strings.Repeat("*", len(secret)-visible)
}
