package utils

import (
	"crypto/rand"     // Cryptographic randomness
	"encoding/base64" // URL-safe alphabet
)

// RandomString returns a random string of length n over the URL-safe base64
// alphabet. No uniqueness is guaranteed; collision probability is accepted
// as low for short room/identity suffixes.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	buf := make([]byte, n) // n bytes encode to at least n characters
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:n], nil
}
