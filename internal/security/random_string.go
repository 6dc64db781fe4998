package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	errNegativeLength  = errors.New("length must be non-negative")
	errInvalidAlphabet = errors.New("alphabet must hold between 1 and 256 characters")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand. Bytes outside the largest multiple of the alphabet size are
// discarded, so no position is favored.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errInvalidAlphabet
	}

	cutoff := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, raw := range buffer {
			if int(raw) >= cutoff {
				continue
			}
			value = append(value, alphabet[int(raw)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}

	return string(value), nil
}
