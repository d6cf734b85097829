package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserListQuery_OnlyAdmins(t *testing.T) {
	repo := NewUserRepository(nil)

	sql, args, err := repo.listQuery("").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM users WHERE role = $1 ORDER BY name ASC")
	assert.Equal(t, []interface{}{"Admin"}, args)
}

func TestUserListQuery_SearchKeepsRoleFilter(t *testing.T) {
	repo := NewUserRepository(nil)

	sql, args, err := repo.listQuery(" ro%ot ").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM users WHERE role = $1 AND (name ILIKE $2 OR username ILIKE $3) ORDER BY name ASC")
	assert.Equal(t, []interface{}{"Admin", `%ro\%ot%`, `%ro\%ot%`}, args)
}
