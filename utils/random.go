package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const numberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous upper-case
// alphabet.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	size := big.NewInt(int64(len(numberCharset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = numberCharset[idx.Int64()]
	}
	return string(b)
}

// DocumentNumber builds "<PREFIX>-YYYYMMDD-XXXXXX".
func DocumentNumber(prefix string, at time.Time) string {
	prefix = strings.TrimRight(strings.ToUpper(strings.TrimSpace(prefix)), "-")
	if prefix == "" {
		prefix = "DOC"
	}
	return prefix + "-" + at.Format("20060102") + "-" + GenerateRandomString(6)
}
