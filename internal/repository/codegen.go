package repository

import (
	"context"
	"crypto/rand"
	"fmt"
)

// Session codes are short enough to read over the phone: six characters
// from this alphabet.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// maxCodeAttempts bounds rejection sampling; at 36^6 keys a handful of
// collisions in a row means the store is effectively full or broken.
const maxCodeAttempts = 32

// codeCharMax is the largest multiple of the alphabet size that fits in a
// byte. Bytes at or above it are redrawn; taking a plain modulo would make
// the first 256%36 characters slightly over-represented.
const codeCharMax = byte(256 - 256%len(codeAlphabet))

// codeChar maps one random byte to an alphabet character, rejecting bytes
// outside the unbiased range.
func codeChar(b byte) (byte, bool) {
	if b >= codeCharMax {
		return 0, false
	}
	return codeAlphabet[int(b)%len(codeAlphabet)], true
}

// NewCode produces one random candidate code.
func NewCode() (string, error) {
	out := make([]byte, 0, codeLength)
	buf := make([]byte, codeLength)
	for len(out) < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate session code: %w", err)
		}
		for _, b := range buf {
			ch, ok := codeChar(b)
			if !ok {
				continue
			}
			out = append(out, ch)
			if len(out) == codeLength {
				break
			}
		}
	}
	return string(out), nil
}

// GenerateCode rejection-samples candidates against the store until one is
// unused.
func GenerateCode(ctx context.Context, repo SessionRepository) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := NewCode()
		if err != nil {
			return "", err
		}
		taken, err := repo.Exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free session code in %d attempts", maxCodeAttempts)
}

// ValidCode reports whether a user-supplied code has the canonical shape.
func ValidCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
