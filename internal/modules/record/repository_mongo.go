package record

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/analysis"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores records as documents in coll. The collection must
// carry the unique index created by database.EnsureMongoIndexes.
func NewMongoRepository(coll *mongo.Collection) Repository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) FindByHash(ctx context.Context, hash string) (*models.AnalyzedString, error) {
	return r.findOne(ctx, bson.M{"properties.content_hash": hash})
}

func (r *mongoRepository) FindOne(ctx context.Context, value string) (*models.AnalyzedString, error) {
	return r.findOne(ctx, byValue(value))
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*models.AnalyzedString, error) {
	var s models.AnalyzedString
	if err := r.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.Store(err, "find analyzed string")
	}
	return &s, nil
}

func (r *mongoRepository) FindMany(ctx context.Context, f query.Filter) ([]models.AnalyzedString, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, mongoFilter(f), opts)
	if err != nil {
		return nil, apperr.Store(err, "list analyzed strings")
	}
	out := []models.AnalyzedString{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store(err, "decode analyzed strings")
	}
	return out, nil
}

func (r *mongoRepository) Create(ctx context.Context, s *models.AnalyzedString) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Mark(errors.Wrap(err, "create analyzed string"), apperr.ErrDuplicateKey)
		}
		return apperr.Store(err, "create analyzed string")
	}
	return nil
}

func (r *mongoRepository) DeleteOne(ctx context.Context, value string) (*models.AnalyzedString, error) {
	var s models.AnalyzedString
	if err := r.coll.FindOneAndDelete(ctx, byValue(value)).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.Store(err, "delete analyzed string")
	}
	return &s, nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return apperr.Store(r.coll.Database().Client().Ping(ctx, nil), "ping mongo")
}

func byValue(value string) bson.M {
	return bson.M{"properties.content_hash": analysis.ContentHash(value), "value": value}
}

func mongoFilter(f query.Filter) bson.M {
	filter := bson.M{}
	if f.IsPalindrome != nil {
		filter["properties.is_palindrome"] = *f.IsPalindrome
	}
	if f.Length != nil {
		rng := bson.M{}
		if f.Length.Gte != nil {
			rng["$gte"] = *f.Length.Gte
		}
		if f.Length.Lte != nil {
			rng["$lte"] = *f.Length.Lte
		}
		if len(rng) > 0 {
			filter["properties.length"] = rng
		}
	}
	if f.WordCount != nil {
		filter["properties.word_count"] = *f.WordCount
	}
	if f.ValueContains != nil {
		filter["value"] = primitive.Regex{Pattern: regexp.QuoteMeta(*f.ValueContains), Options: "i"}
	}
	return filter
}
