package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUnique_EveryNamespacePair(t *testing.T) {
	for _, holder := range models.RegistryOrder {
		for _, target := range models.RegistryOrder {
			lookup := newFakeLookup()
			lookup.add(holder, "X-100", 5)
			registry := NewIdentifierRegistry(lookup)

			result, err := registry.CheckUnique(context.Background(), "X-100", target, 0)
			require.NoError(t, err)
			assert.False(t, result.Unique, "holder=%s target=%s", holder, target)
			assert.Equal(t, holder, result.Conflict)
		}
	}
}

func TestCheckUnique_FreeIdentifier(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add(models.NamespaceStudents, "S-1", 1)

	result, err := NewIdentifierRegistry(lookup).CheckUnique(context.Background(), "S-2", models.NamespaceFaculty, 0)
	require.NoError(t, err)
	assert.True(t, result.Unique)
	assert.Empty(t, result.Conflict)
	assert.Len(t, lookup.calls, 3)
}

func TestCheckUnique_FirstHitWins(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add(models.NamespaceFaculty, "D-1", 1)
	lookup.add(models.NamespaceStaff, "D-1", 2)

	result, err := NewIdentifierRegistry(lookup).CheckUnique(context.Background(), "D-1", models.NamespaceStaff, 0)
	require.NoError(t, err)
	assert.Equal(t, models.NamespaceFaculty, result.Conflict)
	assert.Len(t, lookup.calls, 2)
}

func TestCheckUnique_ExcludeAppliesOnlyToOwnTable(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add(models.NamespaceFaculty, "F-9", 3)

	registry := NewIdentifierRegistry(lookup)

	result, err := registry.CheckUnique(context.Background(), "F-9", models.NamespaceFaculty, 3)
	require.NoError(t, err)
	assert.True(t, result.Unique)

	// id 3 in the faculty table says nothing about a staff record with id 3
	result, err = registry.CheckUnique(context.Background(), "F-9", models.NamespaceStaff, 3)
	require.NoError(t, err)
	assert.False(t, result.Unique)
	assert.Equal(t, models.NamespaceFaculty, result.Conflict)

	last := lookup.calls[len(lookup.calls)-1]
	assert.Equal(t, lookupCall{models.NamespaceFaculty, "F-9", 0}, last)
	for _, call := range lookup.calls {
		if call.Namespace != models.NamespaceFaculty {
			assert.Zero(t, call.ExcludeID)
		}
	}
}

func TestCheckUnique_LookupFailure(t *testing.T) {
	lookup := newFakeLookup()
	lookup.err = errors.New("connection refused")

	_, err := NewIdentifierRegistry(lookup).CheckUnique(context.Background(), "A", models.NamespaceStudents, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookup.err)
}

func TestConflictMessages(t *testing.T) {
	assert.Equal(t, "Faculty number already exists",
		models.FacultyEntity.ConflictMessage(models.NamespaceFaculty))
	assert.Equal(t, "Faculty number already exists as a student number",
		models.FacultyEntity.ConflictMessage(models.NamespaceStudents))
	assert.Equal(t, "Faculty number already exists as a staff number",
		models.FacultyEntity.ConflictMessage(models.NamespaceStaff))
	assert.Equal(t, "Staff number already exists as a faculty number",
		models.StaffEntity.ConflictMessage(models.NamespaceFaculty))
	assert.Equal(t, "Student number already exists",
		models.StudentEntity.ConflictMessage(models.NamespaceStudents))
}

func TestRandomPincode(t *testing.T) {
	for i := 0; i < 50; i++ {
		pin, err := RandomPincode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, pin)
	}
}
