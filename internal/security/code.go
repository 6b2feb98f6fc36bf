package security

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin  = 10000
	codeSpan = 90000
)

// GenerateVerificationCode produces a 5-digit numeric code in
// [10000, 99999]. Codes are scoped to one account's pending
// verification; no cross-account uniqueness is guaranteed.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
