package repositories

import (
	"context"
	"fmt"

	"github.com/lams-capstone/lams-admin/internal/app/models"
)

// IdentifierRepository answers identifier lookups for every namespace
type IdentifierRepository struct {
	tables map[models.Namespace]*PersonRepository
}

// NewIdentifierRepository indexes the given repositories by namespace
func NewIdentifierRepository(repos ...*PersonRepository) *IdentifierRepository {
	tables := make(map[models.Namespace]*PersonRepository, len(repos))
	for _, repo := range repos {
		tables[repo.Entity().Namespace] = repo
	}
	return &IdentifierRepository{tables: tables}
}

// Exists reports whether identifier is present in namespace, ignoring excludeID.
func (r *IdentifierRepository) Exists(ctx context.Context, namespace models.Namespace, identifier string, excludeID int64) (bool, error) {
	repo, ok := r.tables[namespace]
	if !ok {
		return false, fmt.Errorf("unknown identifier namespace %q", namespace)
	}
	return repo.IdentifierExists(ctx, identifier, excludeID)
}
