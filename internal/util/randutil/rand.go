package randutil

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
)

const (
	// idAlphabet avoids 0 so IDs stay readable when typed by hand.
	idAlphabet    = "123456789abcdefghijklmnopqrstuvwxyz"
	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// reader is the randomness source, replaced in tests.
var reader io.Reader = rand.Reader

// RandString generates a random paste ID of length n.
// A failing random source degrades to a fixed character; collisions are
// caught by the store's atomic create.
func RandString(n int) string {
	s, err := fromAlphabet(idAlphabet, n)
	if err != nil {
		slog.Error("crypto/rand failed", "error", err)
		result := []byte(s)
		for i := range result {
			if result[i] == 0 {
				result[i] = idAlphabet[0]
			}
		}
		return string(result)
	}
	return s
}

// Token generates a random modification token of length n. It never
// returns a partially random token.
func Token(n int) (string, error) {
	s, err := fromAlphabet(tokenAlphabet, n)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return s, nil
}

// fromAlphabet picks n characters from alphabet, unbiased. On error the
// unfilled positions are left zero.
func fromAlphabet(alphabet string, n int) (string, error) {
	result := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))

	var firstErr error
	for i := 0; i < n; i++ {
		num, err := rand.Int(reader, max)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result[i] = alphabet[num.Int64()]
	}
	return string(result), firstErr
}
