package record

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/analysis"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, mongoFilter(query.Filter{}))
}

func TestMongoFilter(t *testing.T) {
	var f query.Filter
	f.SetPalindrome(false)
	f.SetMinLength(2)
	f.SetContains("a.b")
	require.NoError(t, f.SetWordCount(3))

	assert.Equal(t, bson.M{
		"properties.is_palindrome": false,
		"properties.length":        bson.M{"$gte": 2},
		"properties.word_count":    3,
		"value":                    primitive.Regex{Pattern: `a\.b`, Options: "i"},
	}, mongoFilter(f))
}

func TestByValueUsesHashKey(t *testing.T) {
	assert.Equal(t, bson.M{
		"properties.content_hash": analysis.ContentHash("noon"),
		"value":                   "noon",
	}, byValue("noon"))
}

func TestMongoCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		rec := &models.AnalyzedString{Value: "noon", Properties: analysis.Analyze("noon"), CreatedAt: time.Now()}

		require.NoError(mt, NewMongoRepository(mt.Coll).Create(context.Background(), rec))
		assert.NotEmpty(mt, rec.ID)
	})

	mt.Run("duplicate hash", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: analyzed_strings index: uniq_content_hash",
		}))
		rec := &models.AnalyzedString{Value: "noon", Properties: analysis.Analyze("noon")}

		err := NewMongoRepository(mt.Coll).Create(context.Background(), rec)
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, apperr.ErrDuplicateKey))
	})
}

func TestMongoDeleteOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns removed document", func(mt *mtest.T) {
		stored := models.AnalyzedString{ID: "id-1", Value: "noon", Properties: analysis.Analyze("noon")}
		doc, err := bson.Marshal(stored)
		require.NoError(mt, err)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.Raw(doc)}))

		rec, err := NewMongoRepository(mt.Coll).DeleteOne(context.Background(), "noon")
		require.NoError(mt, err)
		require.NotNil(mt, rec)
		assert.Equal(mt, "id-1", rec.ID)
		assert.Equal(mt, stored.Properties, rec.Properties)
	})

	mt.Run("absent value", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		rec, err := NewMongoRepository(mt.Coll).DeleteOne(context.Background(), "noon")
		require.NoError(mt, err)
		assert.Nil(mt, rec)
	})
}
