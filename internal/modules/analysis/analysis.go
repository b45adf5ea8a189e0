// Package analysis derives the structural properties of a string.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/strlens/analyzer/internal/models"
)

// Analyze computes the properties of value. It is total and has no side effects.
func Analyze(value string) models.StringProperties {
	freq := make(models.CharacterFrequency)
	length := 0
	for _, r := range value {
		freq[string(r)]++
		length++
	}

	return models.StringProperties{
		Length:             length,
		IsPalindrome:       IsPalindrome(value),
		UniqueCharacters:   len(freq),
		WordCount:          len(strings.Fields(value)),
		ContentHash:        ContentHash(value),
		CharacterFrequency: freq,
	}
}

// ContentHash returns the lowercase hex SHA-256 digest of value.
func ContentHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// IsPalindrome reports whether value reads the same in both directions once
// lowercased with all whitespace removed.
func IsPalindrome(value string) bool {
	normalized := normalize(value)
	for i, j := 0, len(normalized)-1; i < j; i, j = i+1, j-1 {
		if normalized[i] != normalized[j] {
			return false
		}
	}
	return true
}

func normalize(value string) []rune {
	out := make([]rune, 0, len(value))
	for _, r := range strings.ToLower(value) {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
