package query

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestTranslateSingleWord(t *testing.T) {
	in, err := Translate("find single word strings")
	require.NoError(t, err)

	assert.Equal(t, "find single word strings", in.Original)
	assert.Equal(t, Filter{WordCount: intp(1)}, in.ParsedFilters)
}

func TestTranslatePalindromeLongerThan(t *testing.T) {
	in, err := Translate("Palindromic strings LONGER THAN 5")
	require.NoError(t, err)

	f := in.ParsedFilters
	require.NotNil(t, f.IsPalindrome)
	assert.True(t, *f.IsPalindrome)
	require.NotNil(t, f.Length)
	assert.Equal(t, 6, *f.Length.Gte)
	assert.Nil(t, f.Length.Lte)
	assert.Nil(t, f.WordCount)
	assert.Nil(t, f.ValueContains)

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_palindrome":true,"length":{"gte":6}}`, string(raw))
}

func TestTranslateKeepsOriginalCase(t *testing.T) {
	in, err := Translate("Single Word PALINDROME")
	require.NoError(t, err)
	assert.Equal(t, "Single Word PALINDROME", in.Original)
}

func TestTranslateLetter(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"strings containing the letter z", "z"},
		{"strings containing letter Q", "q"},
		{"words containing the letter 7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			in, err := Translate(tt.query)
			require.NoError(t, err)
			require.NotNil(t, in.ParsedFilters.ValueContains)
			assert.Equal(t, tt.want, *in.ParsedFilters.ValueContains)
		})
	}
}

func TestTranslateFirstVowel(t *testing.T) {
	in, err := Translate("palindromic strings that contain the first vowel")
	require.NoError(t, err)
	require.NotNil(t, in.ParsedFilters.ValueContains)
	assert.Equal(t, "a", *in.ParsedFilters.ValueContains)

	in, err = Translate("strings that contain the first vowel")
	require.NoError(t, err)
	assert.Nil(t, in.ParsedFilters.ValueContains)
}

func TestTranslateFirstVowelOverridesLetter(t *testing.T) {
	in, err := Translate("palindromes containing the letter z and the first vowel")
	require.NoError(t, err)
	assert.Equal(t, "a", *in.ParsedFilters.ValueContains)
}

func TestTranslateCombined(t *testing.T) {
	in, err := Translate("single word palindromic strings longer than 2 containing the letter e")
	require.NoError(t, err)

	raw, err := json.Marshal(in.ParsedFilters)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word_count":1,"is_palindrome":true,"length":{"gte":3},"value_contains":"e"}`, string(raw))
}

func TestTranslateUnrecognized(t *testing.T) {
	for _, q := range []string{"", "show me everything", "longer than many", "letter", "12345"} {
		in, err := Translate(q)
		require.NoError(t, err, q)
		assert.True(t, in.ParsedFilters.Empty(), q)
	}
}

func TestTranslateWordCount(t *testing.T) {
	in, err := Translate("strings with 3 words")
	require.NoError(t, err)
	assert.Equal(t, 3, *in.ParsedFilters.WordCount)

	in, err = Translate("two-word or 2-word phrases")
	require.NoError(t, err)
	assert.Equal(t, 2, *in.ParsedFilters.WordCount)
}

func TestTranslateLengthInWordsIsNotWordCount(t *testing.T) {
	cases := []struct {
		query string
		want  Filter
	}{
		{"strings longer than 3 words", Filter{Length: &LengthRange{Gte: intp(4)}}},
		{"strings shorter than 10 words", Filter{Length: &LengthRange{Lte: intp(9)}}},
		{"2-word strings shorter than 10 words", Filter{Length: &LengthRange{Lte: intp(9)}, WordCount: intp(2)}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			in, err := Translate(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, in.ParsedFilters)
		})
	}

	in, err := Translate("palindromes shorter than 10 words")
	require.NoError(t, err)
	assert.Nil(t, in.ParsedFilters.WordCount)
	assert.True(t, *in.ParsedFilters.IsPalindrome)
}

func TestTranslateShorterThan(t *testing.T) {
	in, err := Translate("strings longer than 2 and shorter than 10")
	require.NoError(t, err)
	assert.Equal(t, &LengthRange{Gte: intp(3), Lte: intp(9)}, in.ParsedFilters.Length)
}

func TestTranslateUnsatisfiable(t *testing.T) {
	queries := []string{
		"strings with 0 words",
		"single word strings with 4 words",
		"strings shorter than 0",
		"strings longer than 10 and shorter than 5",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			_, err := Translate(q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrUnsatisfiableFilter))
		})
	}
}

func TestTranslateOverflow(t *testing.T) {
	_, err := Translate("strings longer than 99999999999999999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnparseableQuery))
}
