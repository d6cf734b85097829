package models

import "fmt"

// Fields holds client-supplied values keyed by column name. A key that is
// present was supplied, even when its value is empty.
type Fields map[string]string

// Has reports whether column was supplied
func (f Fields) Has(column string) bool {
	_, ok := f[column]
	return ok
}

// Person is a record living in one of the identifier namespaces.
type Person interface {
	GetID() int64
	SetID(id int64)
	Identifier() string
	PicturePath() string
	// SetPicture replaces the stored picture path; empty clears it.
	SetPicture(path string)
	// Apply overwrites only the supplied columns.
	Apply(fields Fields)
	// Fields returns the current writable values as strings.
	Fields() Fields
	// Values returns writable column values ready for binding.
	Values() map[string]interface{}
	// ScanTargets returns destinations matching Entity.Columns.
	ScanTargets() []interface{}
}

// Entity describes the table behind a Person kind.
type Entity struct {
	Namespace        Namespace
	Label            string
	Table            string
	IdentifierColumn string
	PincodeColumn    string
	// Columns is the select list, in ScanTargets order.
	Columns []string
	// FilterColumns accept equality filters in List.
	FilterColumns []string
	// SearchColumns are matched by the free-text search term.
	SearchColumns []string
	New           func() Person
}

// ListFilter narrows List results. Equals entries on columns that are not
// filterable, or with empty values, are ignored.
type ListFilter struct {
	Equals map[string]string
	Search string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ConflictMessage is the message shown when an identifier for this entity is
// already claimed in namespace conflict.
func (e Entity) ConflictMessage(conflict Namespace) string {
	if conflict == e.Namespace {
		return fmt.Sprintf("%s number already exists", e.Label)
	}
	return fmt.Sprintf("%s number already exists as a %s number", e.Label, conflict.Noun())
}

// NotFoundMessage is the message shown when a record id does not exist.
func (e Entity) NotFoundMessage() string {
	return e.Label + " not found"
}

// IsFilterable reports whether column accepts equality filters
func (e Entity) IsFilterable(column string) bool {
	for _, c := range e.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}

// UniqueConstraint names the database constraint backing the identifier column.
func (e Entity) UniqueConstraint() string {
	return e.Table + "_" + e.IdentifierColumn + "_key"
}
