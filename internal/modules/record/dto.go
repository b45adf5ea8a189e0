package record

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
)

// CreateStringDTO keeps value raw so a wrong JSON type can be told apart
// from a missing field.
type CreateStringDTO struct {
	Value json.RawMessage `json:"value"`
}

func (d CreateStringDTO) parse() (string, error) {
	raw := bytes.TrimSpace(d.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", apperr.Invalidf("Missing 'value' field")
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", errNotAString
	}
	if value == "" {
		return "", apperr.Invalidf("'value' must not be empty")
	}
	return value, nil
}

// listParams reads the structured filter from the query string. It returns
// the filter and the parameters it understood, with typed values.
func listParams(c *gin.Context) (query.Filter, gin.H, error) {
	var f query.Filter
	applied := gin.H{}

	if raw, ok := c.GetQuery("is_palindrome"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, nil, apperr.Invalidf("'is_palindrome' must be true or false")
		}
		f.SetPalindrome(v)
		applied["is_palindrome"] = v
	}
	if n, ok, err := intParam(c, "min_length"); err != nil {
		return f, nil, err
	} else if ok {
		f.SetMinLength(n)
		applied["min_length"] = n
	}
	if n, ok, err := intParam(c, "max_length"); err != nil {
		return f, nil, err
	} else if ok {
		f.SetMaxLength(n)
		applied["max_length"] = n
	}
	if n, ok, err := intParam(c, "word_count"); err != nil {
		return f, nil, err
	} else if ok {
		f.WordCount = &n
		applied["word_count"] = n
	}
	if raw := c.Query("contains_character"); raw != "" {
		f.SetContains(raw)
		applied["contains_character"] = raw
	}
	return f, applied, nil
}

func intParam(c *gin.Context, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false, apperr.Invalidf("'%s' must be a non-negative integer", name)
	}
	return n, true, nil
}
