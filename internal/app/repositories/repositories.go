package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lams-capstone/lams-admin/internal/app/models"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *PersonRepository
	FacultyRepository    *PersonRepository
	StaffRepository      *PersonRepository
	IdentifierRepository *IdentifierRepository
	UserRepository       *UserRepository
}

// NewRepositories initializes all repositories over one pool
func NewRepositories(db DBTX) *Repositories {
	students := NewPersonRepository(db, models.StudentEntity)
	faculty := NewPersonRepository(db, models.FacultyEntity)
	staff := NewPersonRepository(db, models.StaffEntity)

	return &Repositories{
		StudentRepository:    students,
		FacultyRepository:    faculty,
		StaffRepository:      staff,
		IdentifierRepository: NewIdentifierRepository(students, faculty, staff),
		UserRepository:       NewUserRepository(db),
	}
}
