package record

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/analysis"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
)

type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Create analyzes value and stores it. Uniqueness is enforced by the
// repository, so concurrent creates of one value yield exactly one record.
func (s *Service) Create(ctx context.Context, value string) (*models.AnalyzedString, error) {
	rec := &models.AnalyzedString{
		Value:      value,
		Properties: analysis.Analyze(value),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			return nil, errors.Mark(errors.New("String already exists"), apperr.ErrDuplicateKey)
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, value string) (*models.AnalyzedString, error) {
	hash := analysis.ContentHash(value)
	if rec, ok := s.cache.Get(ctx, hash); ok && rec.Value == value {
		return rec, nil
	}
	rec, err := s.repo.FindOne(ctx, value)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFound()
	}
	s.cache.Set(ctx, rec)
	return rec, nil
}

func (s *Service) List(ctx context.Context, f query.Filter) ([]models.AnalyzedString, error) {
	return s.repo.FindMany(ctx, f)
}

func (s *Service) Delete(ctx context.Context, value string) error {
	rec, err := s.repo.DeleteOne(ctx, value)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, analysis.ContentHash(value))
	if rec == nil {
		return notFound()
	}
	return nil
}

// FilterByNaturalLanguage translates q and runs the resulting filter.
func (s *Service) FilterByNaturalLanguage(ctx context.Context, q string) (*query.Interpretation, []models.AnalyzedString, error) {
	in, err := query.Translate(q)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.repo.FindMany(ctx, in.ParsedFilters)
	if err != nil {
		return nil, nil, err
	}
	return in, data, nil
}

func (s *Service) Ping(ctx context.Context) error { return s.repo.Ping(ctx) }

func notFound() error {
	return errors.Mark(errors.New("String not found"), apperr.ErrNotFound)
}
