package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmpty(t *testing.T) {
	p := Analyze("")

	assert.Equal(t, 0, p.Length)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 0, p.UniqueCharacters)
	assert.Equal(t, 0, p.WordCount)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", p.ContentHash)
	assert.Empty(t, p.CharacterFrequency)
	assert.NotNil(t, p.CharacterFrequency)
}

func TestAnalyzeNoon(t *testing.T) {
	p := Analyze("noon")

	assert.Equal(t, 4, p.Length)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 2, p.UniqueCharacters)
	assert.Equal(t, 1, p.WordCount)
	assert.Equal(t, map[string]int{"n": 2, "o": 2}, map[string]int(p.CharacterFrequency))
}

func TestPalindrome(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"race car", true},
		{"Race Car", true},
		{"A man a man", false},
		{"Was it a car or a cat I saw", true},
		{"a\tb\nA", true},
		{"ab\tC", false},
		{"aB\t\nbA", true},
		{"   ", true},
		{"hello", false},
		{"été", true},
		{"No, on", true},
		{"No on,", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.in).IsPalindrome)
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, Analyze("").WordCount)
	assert.Equal(t, 0, Analyze("   ").WordCount)
	assert.Equal(t, 0, Analyze("\t\n ").WordCount)
	assert.Equal(t, 3, Analyze("one two  three").WordCount)
	assert.Equal(t, 2, Analyze("  leading and").WordCount)
	assert.Equal(t, 1, Analyze("single").WordCount)
}

func TestUniqueCharactersIsCaseAndSpaceSensitive(t *testing.T) {
	p := Analyze("Aa a")

	assert.Equal(t, 3, p.UniqueCharacters)
	assert.Equal(t, map[string]int{"A": 1, "a": 2, " ": 1}, map[string]int(p.CharacterFrequency))
}

func TestFrequencySumsToLength(t *testing.T) {
	inputs := []string{"", "noon", "hello world", "ünïcödé ✓✓", "日本語 テキスト", "🙂🙂x", "  \t"}
	for _, in := range inputs {
		p := Analyze(in)
		assert.Equal(t, p.Length, p.CharacterFrequency.Total(), in)
		assert.Equal(t, len(p.CharacterFrequency), p.UniqueCharacters, in)
		for ch, n := range p.CharacterFrequency {
			assert.GreaterOrEqual(t, n, 1, ch)
		}
	}
}

func TestLengthCountsCharacters(t *testing.T) {
	assert.Equal(t, 5, Analyze("héllo").Length)
	assert.Equal(t, 3, Analyze("🙂🙂x").Length)
}

func TestContentHash(t *testing.T) {
	a := Analyze("hello")
	b := Analyze("Hello")
	c := Analyze("hello")

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", a.ContentHash)
	assert.NotEqual(t, a.ContentHash, b.ContentHash)
	assert.Equal(t, a.ContentHash, c.ContentHash)
	assert.Len(t, a.ContentHash, 64)
	assert.Equal(t, a.ContentHash, ContentHash("hello"))
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	in := "The quick brown fox"
	first := Analyze(in)
	second := Analyze(in)
	require.Equal(t, first, second)
}
