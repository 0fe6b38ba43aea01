package id

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
	if !IsID32(got) {
		t.Fatalf("IsID32 rejected generated id %q", got)
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewAccountNumber_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		got := NewAccountNumber()
		if !IsAccountNumber(got) {
			t.Fatalf("not an 8-digit account number: %q", got)
		}
		n, err := strconv.Atoi(got)
		if err != nil {
			t.Fatalf("Atoi(%q): %v", got, err)
		}
		if n < accountNumberMin || n > accountNumberMax {
			t.Fatalf("out of range: %d", n)
		}
	}
}

func TestIsAccountNumber(t *testing.T) {
	cases := map[string]bool{
		"12345678":  true,
		"99999999":  true,
		"01234567":  false,
		"1234567":   false,
		"123456789": false,
		"1234567a":  false,
		"":          false,
	}
	for in, want := range cases {
		if got := IsAccountNumber(in); got != want {
			t.Errorf("IsAccountNumber(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsID32(t *testing.T) {
	if !IsID32(strings.Repeat("a", 32)) {
		t.Fatal("want valid")
	}
	for _, s := range []string{strings.Repeat("A", 32), strings.Repeat("g", 32), "abc", strings.Repeat("a", 33)} {
		if IsID32(s) {
			t.Fatalf("IsID32(%q) = true, want false", s)
		}
	}
}
