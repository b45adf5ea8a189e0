package record

import (
	"context"

	"github.com/strlens/analyzer/internal/models"
	"github.com/strlens/analyzer/internal/modules/query"
)

// Repository persists analyzed strings. Lookups that miss return a nil record
// and a nil error. Create must reject a second record with the same content
// hash atomically, returning an error marked apperr.ErrDuplicateKey.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*models.AnalyzedString, error)
	FindOne(ctx context.Context, value string) (*models.AnalyzedString, error)
	FindMany(ctx context.Context, f query.Filter) ([]models.AnalyzedString, error)
	Create(ctx context.Context, s *models.AnalyzedString) error
	DeleteOne(ctx context.Context, value string) (*models.AnalyzedString, error)
	Ping(ctx context.Context) error
}
