package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

const (
	accountNumberMin = 10_000_000
	accountNumberMax = 99_999_999
)

// NewID32 returns exactly 32 hex characters (a random UUID without separators).
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// NewAccountNumber samples an 8-digit account number uniformly from
// [10000000, 99999999]. Uniqueness is not guaranteed; callers must check.
func NewAccountNumber() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	span := uint64(accountNumberMax - accountNumberMin + 1)
	n := accountNumberMin + binary.BigEndian.Uint64(b[:])%span
	return strconv.FormatUint(n, 10)
}

// IsAccountNumber reports whether s is a well-formed 8-digit account number.
func IsAccountNumber(s string) bool {
	if len(s) != 8 || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsID32 reports whether s is 32-char lowercase hex.
func IsID32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
