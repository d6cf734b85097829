package repositories

import (
	"testing"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_NoFilter(t *testing.T) {
	repo := NewPersonRepository(nil, models.StaffEntity)

	sql, args, err := repo.listQuery(models.ListFilter{}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, staff_number, name, department, role, picture, pincode, registration_status, created_at, updated_at FROM staff ORDER BY name ASC", sql)
	assert.Empty(t, args)
}

func TestListQuery_FiltersAndSearch(t *testing.T) {
	repo := NewPersonRepository(nil, models.StudentEntity)

	sql, args, err := repo.listQuery(models.ListFilter{
		Equals: map[string]string{
			"department": "CCS",
			"block":      "",
			"pin_code":   "123456", // not filterable
		},
		Search: "  ali ",
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM students WHERE department = $1 AND (student_number ILIKE $2 OR name ILIKE $3 OR department ILIKE $4 OR program ILIKE $5)")
	assert.NotContains(t, sql, "pin_code =")
	assert.NotContains(t, sql, "block =")
	assert.Equal(t, []interface{}{"CCS", "%ali%", "%ali%", "%ali%", "%ali%"}, args)
}

func TestListQuery_FilterOrderFollowsEntity(t *testing.T) {
	repo := NewPersonRepository(nil, models.FacultyEntity)

	sql, args, err := repo.listQuery(models.ListFilter{
		Equals: map[string]string{"registration_status": "Registered", "department": "CCS"},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE department = $1 AND registration_status = $2")
	assert.Equal(t, []interface{}{"CCS", "Registered"}, args)
}

func TestDistinctQuery(t *testing.T) {
	repo := NewPersonRepository(nil, models.StudentEntity)

	sql, args, err := repo.distinctQuery("program", map[string]string{"department": "CCS"}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT DISTINCT program FROM students WHERE program IS NOT NULL AND program <> $1 AND department = $2 ORDER BY program ASC", sql)
	assert.Equal(t, []interface{}{"", "CCS"}, args)
}

func TestExistsQuery(t *testing.T) {
	repo := NewPersonRepository(nil, models.FacultyEntity)

	sql, args, err := repo.existsQuery("F-1", 0).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM faculty WHERE faculty_number = $1 )", sql)
	assert.Equal(t, []interface{}{"F-1"}, args)

	sql, args, err = repo.existsQuery("F-1", 7).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM faculty WHERE faculty_number = $1 AND id <> $2 )", sql)
	assert.Equal(t, []interface{}{"F-1", int64(7)}, args)
}

func TestUserListQuery(t *testing.T) {
	repo := NewUserRepository(nil)

	sql, args, err := repo.listQuery("adm").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM users WHERE (name ILIKE $1 OR username ILIKE $2) ORDER BY name ASC")
	assert.Equal(t, []interface{}{"%adm%", "%adm%"}, args)
}
