package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// certificateCodePrefix makes verification codes recognizable at a glance.
const certificateCodePrefix = "OOS-"

// randomToken returns a URL-safe string carrying n bytes of CSPRNG entropy.
// At 32 bytes collisions are negligible, so no uniqueness retry loop is
// needed; the unique index is the backstop.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// newCertificateCode builds a verification code like OOS-3F9A0C217B4D.
func newCertificateCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return certificateCodePrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}
