package joincode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Codes look like REG-COU-7F2KQ: a fixed tag, the first three letters of the
// pass type, and a random suffix. Lookups are case-insensitive; Normalize is
// the single place that decides what "case-insensitive" means.

const (
	codeTag      = "REG"
	suffixLen    = 5
	suffixRunes  = "ABCDEFGHJKMNPQRSTUVWXYZ23456789" // no 0/O/1/I/L
	segmentCount = 3
)

// Generate builds a fresh join code for the given pass type. Uniqueness is
// the caller's problem (regenerate on collision against live codes).
func Generate(passType string) (string, error) {
	fragment := strings.ToUpper(passType)
	if len(fragment) > 3 {
		fragment = fragment[:3]
	}
	if fragment == "" {
		fragment = "GEN"
	}

	suffix := make([]byte, suffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(suffixRunes))))
		if err != nil {
			return "", fmt.Errorf("joincode.Generate: %w", err)
		}
		suffix[i] = suffixRunes[n.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s", codeTag, fragment, string(suffix)), nil
}

// Normalize maps user input to storage form. Codes are stored uppercase.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code has the expected shape. It does not
// check existence, only format.
func Valid(code string) bool {
	parts := strings.Split(code, "-")
	if len(parts) != segmentCount {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return parts[0] == codeTag && len(parts[2]) == suffixLen
}
