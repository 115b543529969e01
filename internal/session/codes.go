package session

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Spectate codes skip characters that read alike: 0, O, 1, I, L.
const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 4

// GenerateCode returns a random spectate code.
func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}

// NormalizeCode upper-cases typed input and reports whether it can be a
// spectate code at all.
func NormalizeCode(s string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != codeLength {
		return "", false
	}
	for _, ch := range code {
		if !strings.ContainsRune(alphabet, ch) {
			return "", false
		}
	}
	return code, true
}
