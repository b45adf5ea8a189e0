package record

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/analysis"
	"github.com/strlens/analyzer/internal/modules/query"
	"github.com/strlens/analyzer/internal/pkg/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byHash map[string]models.AnalyzedString
}

// NewMemoryRepository keeps records in process memory. It backs the "memory"
// store driver used for local runs and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{byHash: make(map[string]models.AnalyzedString)}
}

func (r *memoryRepository) FindByHash(_ context.Context, hash string) (*models.AnalyzedString, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byHash[hash]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *memoryRepository) FindOne(_ context.Context, value string) (*models.AnalyzedString, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byHash[analysis.ContentHash(value)]; ok && s.Value == value {
		return &s, nil
	}
	return nil, nil
}

func (r *memoryRepository) FindMany(_ context.Context, f query.Filter) ([]models.AnalyzedString, error) {
	r.mu.RLock()
	out := []models.AnalyzedString{}
	for _, s := range r.byHash {
		if f.Match(&s) {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Value < out[j].Value
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, s *models.AnalyzedString) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash := s.Properties.ContentHash
	if _, ok := r.byHash[hash]; ok {
		return errors.Mark(errors.Newf("content hash %s already stored", hash), apperr.ErrDuplicateKey)
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.byHash[hash] = *s
	return nil
}

func (r *memoryRepository) DeleteOne(_ context.Context, value string) (*models.AnalyzedString, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash := analysis.ContentHash(value)
	s, ok := r.byHash[hash]
	if !ok || s.Value != value {
		return nil, nil
	}
	delete(r.byHash, hash)
	return &s, nil
}

func (r *memoryRepository) Ping(context.Context) error { return nil }
