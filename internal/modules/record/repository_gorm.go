package record

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/analysis"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository stores records in a SQL table through gorm. The db must be
// opened with TranslateError so unique violations are recognisable.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByHash(ctx context.Context, hash string) (*models.AnalyzedString, error) {
	return r.first(ctx, "content_hash = ?", hash)
}

// FindOne looks the value up through its hash, which is indexed, and then
// confirms the stored value itself.
func (r *gormRepository) FindOne(ctx context.Context, value string) (*models.AnalyzedString, error) {
	return r.first(ctx, "content_hash = ? AND value = ?", analysis.ContentHash(value), value)
}

func (r *gormRepository) first(ctx context.Context, cond string, args ...interface{}) (*models.AnalyzedString, error) {
	var s models.AnalyzedString
	if err := r.db.WithContext(ctx).Where(cond, args...).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Store(err, "find analyzed string")
	}
	return &s, nil
}

func (r *gormRepository) FindMany(ctx context.Context, f query.Filter) ([]models.AnalyzedString, error) {
	tx := r.db.WithContext(ctx).Model(&models.AnalyzedString{})
	if f.IsPalindrome != nil {
		tx = tx.Where("is_palindrome = ?", *f.IsPalindrome)
	}
	if f.Length != nil {
		if f.Length.Gte != nil {
			tx = tx.Where("length >= ?", *f.Length.Gte)
		}
		if f.Length.Lte != nil {
			tx = tx.Where("length <= ?", *f.Length.Lte)
		}
	}
	if f.WordCount != nil {
		tx = tx.Where("word_count = ?", *f.WordCount)
	}
	if f.ValueContains != nil {
		tx = tx.Where("LOWER(value) LIKE ?", "%"+escapeLike(strings.ToLower(*f.ValueContains))+"%")
	}

	out := []models.AnalyzedString{}
	if err := tx.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, apperr.Store(err, "list analyzed strings")
	}
	return out, nil
}

func (r *gormRepository) Create(ctx context.Context, s *models.AnalyzedString) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Mark(errors.Wrap(err, "create analyzed string"), apperr.ErrDuplicateKey)
		}
		return apperr.Store(err, "create analyzed string")
	}
	return nil
}

func (r *gormRepository) DeleteOne(ctx context.Context, value string) (*models.AnalyzedString, error) {
	var deleted *models.AnalyzedString
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.AnalyzedString
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("content_hash = ? AND value = ?", analysis.ContentHash(value), value).
			First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.AnalyzedString{}, "id = ?", s.ID).Error; err != nil {
			return err
		}
		deleted = &s
		return nil
	})
	if err != nil {
		return nil, apperr.Store(err, "delete analyzed string")
	}
	return deleted, nil
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperr.Store(err, "resolve sql db")
	}
	return apperr.Store(sqlDB.PingContext(ctx), "ping database")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
