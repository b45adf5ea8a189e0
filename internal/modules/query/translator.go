package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/pkg/apperr"
)

// Interpretation is the outcome of translating a free-text query.
type Interpretation struct {
	Original      string `json:"original"`
	ParsedFilters Filter `json:"parsed_filters"`
}

// rule inspects the lowercased query and adds predicates to f.
type rule struct {
	name  string
	apply func(q string, f *Filter) error
}

var (
	longerThanRe  = regexp.MustCompile(`longer than (\d+)`)
	shorterThanRe = regexp.MustCompile(`shorter than (\d+)`)
	letterRe      = regexp.MustCompile(`containing (?:the )?letter (\w)`)
	wordsRe       = regexp.MustCompile(`\b(\d+)[ -]words?\b`)
)

// rules run in order and are all applied; later rules may depend on
// predicates set by earlier ones.
var rules = []rule{
	{"single word", func(q string, f *Filter) error {
		if strings.Contains(q, "single word") {
			return f.SetWordCount(1)
		}
		return nil
	}},
	{"word count", func(q string, f *Filter) error {
		for _, m := range wordsRe.FindAllStringSubmatchIndex(q, -1) {
			// "longer than 3 words" bounds the length, not the word count.
			if isLengthOperand(q[:m[0]]) {
				continue
			}
			n, err := atoi(q[m[2]:m[3]])
			if err != nil {
				return err
			}
			if err := f.SetWordCount(n); err != nil {
				return err
			}
		}
		return nil
	}},
	{"palindrome", func(q string, f *Filter) error {
		if strings.Contains(q, "palindrom") {
			f.SetPalindrome(true)
		}
		return nil
	}},
	{"longer than", func(q string, f *Filter) error {
		m := longerThanRe.FindStringSubmatch(q)
		if m == nil {
			return nil
		}
		n, err := atoi(m[1])
		if err != nil {
			return err
		}
		f.SetMinLength(n + 1)
		return nil
	}},
	{"shorter than", func(q string, f *Filter) error {
		m := shorterThanRe.FindStringSubmatch(q)
		if m == nil {
			return nil
		}
		n, err := atoi(m[1])
		if err != nil {
			return err
		}
		f.SetMaxLength(n - 1)
		return nil
	}},
	{"letter", func(q string, f *Filter) error {
		if m := letterRe.FindStringSubmatch(q); m != nil {
			f.SetContains(m[1])
		}
		return nil
	}},
	{"first vowel", func(q string, f *Filter) error {
		if strings.Contains(q, "first vowel") && f.IsPalindrome != nil && *f.IsPalindrome {
			f.SetContains("a")
		}
		return nil
	}},
}

// Translate turns a free-text query into a filter. Text no rule recognizes is
// ignored. It fails only when a numeric operand overflows
// (apperr.ErrUnparseableQuery) or the resulting predicates contradict each
// other (apperr.ErrUnsatisfiableFilter).
func Translate(query string) (*Interpretation, error) {
	q := strings.ToLower(query)

	var f Filter
	for _, r := range rules {
		if err := r.apply(q, &f); err != nil {
			return nil, errors.Wrapf(err, "rule %q", r.name)
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &Interpretation{Original: query, ParsedFilters: f}, nil
}

func isLengthOperand(prefix string) bool {
	prefix = strings.TrimSpace(prefix)
	return strings.HasSuffix(prefix, "longer than") || strings.HasSuffix(prefix, "shorter than")
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n > maxOperand {
		return 0, errors.Mark(errors.Newf("number %q is out of range", s), apperr.ErrUnparseableQuery)
	}
	return n, nil
}

// maxOperand keeps n+1 from overflowing.
const maxOperand = 1<<31 - 2
