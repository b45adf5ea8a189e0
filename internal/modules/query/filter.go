// Package query holds the predicate set applied to stored strings and the
// natural-language translator that produces it.
package query

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/pkg/apperr"
)

// LengthRange bounds a value's length, both ends inclusive.
type LengthRange struct {
	Gte *int `json:"gte,omitempty"`
	Lte *int `json:"lte,omitempty"`
}

// Filter is a conjunction of per-field predicates. A nil field imposes no
// constraint.
type Filter struct {
	IsPalindrome  *bool        `json:"is_palindrome,omitempty"`
	Length        *LengthRange `json:"length,omitempty"`
	WordCount     *int         `json:"word_count,omitempty"`
	ValueContains *string      `json:"value_contains,omitempty"`
}

// Empty reports whether f matches every record.
func (f Filter) Empty() bool {
	return f.IsPalindrome == nil && f.Length == nil && f.WordCount == nil && f.ValueContains == nil
}

func (f *Filter) SetMinLength(n int) {
	if f.Length == nil {
		f.Length = &LengthRange{}
	}
	f.Length.Gte = &n
}

func (f *Filter) SetMaxLength(n int) {
	if f.Length == nil {
		f.Length = &LengthRange{}
	}
	f.Length.Lte = &n
}

func (f *Filter) SetPalindrome(v bool) { f.IsPalindrome = &v }

func (f *Filter) SetContains(s string) { f.ValueContains = &s }

// SetWordCount records an exact word count. A second, different count makes
// the filter unsatisfiable.
func (f *Filter) SetWordCount(n int) error {
	if f.WordCount != nil && *f.WordCount != n {
		return errors.Mark(errors.Newf("conflicting word counts %d and %d", *f.WordCount, n), apperr.ErrUnsatisfiableFilter)
	}
	f.WordCount = &n
	return nil
}

// Validate rejects predicate sets that no record can satisfy.
func (f Filter) Validate() error {
	if f.WordCount != nil && *f.WordCount <= 0 {
		return errors.Mark(errors.Newf("word count %d can never match", *f.WordCount), apperr.ErrUnsatisfiableFilter)
	}
	if r := f.Length; r != nil {
		if r.Lte != nil && *r.Lte < 0 {
			return errors.Mark(errors.Newf("length at most %d can never match", *r.Lte), apperr.ErrUnsatisfiableFilter)
		}
		if r.Gte != nil && r.Lte != nil && *r.Gte > *r.Lte {
			return errors.Mark(errors.Newf("length range [%d, %d] is empty", *r.Gte, *r.Lte), apperr.ErrUnsatisfiableFilter)
		}
	}
	return nil
}

// Match evaluates f against a record in memory.
func (f Filter) Match(s *models.AnalyzedString) bool {
	p := s.Properties
	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.Length != nil {
		if f.Length.Gte != nil && p.Length < *f.Length.Gte {
			return false
		}
		if f.Length.Lte != nil && p.Length > *f.Length.Lte {
			return false
		}
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ValueContains != nil && !strings.Contains(strings.ToLower(s.Value), strings.ToLower(*f.ValueContains)) {
		return false
	}
	return true
}
