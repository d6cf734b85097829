package services

import (
	"context"
	"fmt"

	"github.com/lams-capstone/lams-admin/internal/app/models"
)

// IdentifierLookup answers whether an identifier exists in one namespace.
type IdentifierLookup interface {
	Exists(ctx context.Context, namespace models.Namespace, identifier string, excludeID int64) (bool, error)
}

// UniqueResult is the outcome of a uniqueness check. Conflict is set only
// when Unique is false.
type UniqueResult struct {
	Unique   bool
	Conflict models.Namespace
}

// IdentifierRegistry decides whether an identifier is free across every
// person namespace.
type IdentifierRegistry interface {
	// CheckUnique looks the identifier up in models.RegistryOrder and reports
	// the first namespace holding it. excludeID only applies to target's own
	// table, so a record keeping its identifier does not conflict with itself.
	CheckUnique(ctx context.Context, identifier string, target models.Namespace, excludeID int64) (UniqueResult, error)
}

type identifierRegistryImpl struct {
	lookup IdentifierLookup
}

// NewIdentifierRegistry creates a registry over lookup
func NewIdentifierRegistry(lookup IdentifierLookup) IdentifierRegistry {
	return &identifierRegistryImpl{lookup: lookup}
}

func (r *identifierRegistryImpl) CheckUnique(ctx context.Context, identifier string, target models.Namespace, excludeID int64) (UniqueResult, error) {
	for _, namespace := range models.RegistryOrder {
		var exclude int64
		if namespace == target {
			exclude = excludeID
		}

		exists, err := r.lookup.Exists(ctx, namespace, identifier, exclude)
		if err != nil {
			return UniqueResult{}, fmt.Errorf("error checking identifier in %s: %w", namespace, err)
		}
		if exists {
			return UniqueResult{Unique: false, Conflict: namespace}, nil
		}
	}
	return UniqueResult{Unique: true}, nil
}
