package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gorm.io/gorm"
)

// AnalyzedString is a persisted string together with its derived properties.
type AnalyzedString struct {
	ID         string           `json:"id"         gorm:"type:char(36);primaryKey"      bson:"_id"`
	Value      string           `json:"value"      gorm:"type:longtext;not null"         bson:"value"`
	Properties StringProperties `json:"properties" gorm:"embedded"                       bson:"properties"`
	CreatedAt  time.Time        `json:"created_at"                                       bson:"created_at"`
}

func (AnalyzedString) TableName() string { return "analyzed_strings" }

func (s *AnalyzedString) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// StringProperties are fully determined by the value they were computed from.
type StringProperties struct {
	Length             int                `json:"length"              gorm:"not null;index"           bson:"length"`
	IsPalindrome       bool               `json:"is_palindrome"       gorm:"not null;index"           bson:"is_palindrome"`
	UniqueCharacters   int                `json:"unique_characters"   gorm:"not null"                 bson:"unique_characters"`
	WordCount          int                `json:"word_count"          gorm:"not null;index"           bson:"word_count"`
	ContentHash        string             `json:"content_hash"        gorm:"type:char(64);uniqueIndex" bson:"content_hash"`
	CharacterFrequency CharacterFrequency `json:"character_frequency" gorm:"type:longtext"            bson:"character_frequency"`
}

// CharacterFrequency maps each character of a value to its occurrence count.
// It is stored as a JSON object in SQL and as a list of pairs in MongoDB,
// where arbitrary characters are not valid field names.
type CharacterFrequency map[string]int

// Total returns the sum of all counts.
func (f CharacterFrequency) Total() int {
	n := 0
	for _, c := range f {
		n += c
	}
	return n
}

func (f CharacterFrequency) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *CharacterFrequency) Scan(value interface{}) error {
	if f == nil {
		return fmt.Errorf("models.CharacterFrequency: Scan on nil pointer")
	}
	if value == nil {
		*f = CharacterFrequency{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.CharacterFrequency: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*f = CharacterFrequency{}
		return nil
	}

	m := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return fmt.Errorf("models.CharacterFrequency: %w", err)
	}
	*f = m
	return nil
}

type charCount struct {
	Char  string `bson:"char"`
	Count int    `bson:"count"`
}

func (f CharacterFrequency) MarshalBSONValue() (bsontype.Type, []byte, error) {
	pairs := make([]charCount, 0, len(f))
	for ch, n := range f {
		pairs = append(pairs, charCount{Char: ch, Count: n})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Char < pairs[j].Char })
	return bson.MarshalValue(pairs)
}

func (f *CharacterFrequency) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*f = CharacterFrequency{}
		return nil
	}
	var pairs []charCount
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&pairs); err != nil {
		return fmt.Errorf("models.CharacterFrequency: %w", err)
	}
	m := make(CharacterFrequency, len(pairs))
	for _, p := range pairs {
		m[p.Char] += p.Count
	}
	*f = m
	return nil
}
