package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/dberrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/helpers"
	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
)

const usernameConstraint = "users_username_key"

var userColumns = []string{"id", "name", "role", "username", "password", "pincode", "created_at", "updated_at"}

// UserRepository handles database operations for admin accounts
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Role, &u.Username, &u.Password, &u.Pincode, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func usernameTaken() error {
	return &apperrors.CustomError{Err: apperrors.ErrUsernameExists, Message: "Username already exists"}
}

// Create inserts user and fills in its id and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "role", "username", "password", "pincode").
		Values(user.Name, user.Role, user.Username, user.Password, user.Pincode).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameConstraint) {
			return usernameTaken()
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// Update stores name, username and role. Password and pincode are only
// written when non-empty.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := r.sb.Update("users").
		Set("name", user.Name).
		Set("username", user.Username).
		Set("role", user.Role).
		Set("updated_at", squirrel.Expr("NOW()"))
	if user.Password != "" {
		query = query.Set("password", user.Password)
	}
	if user.Pincode != "" {
		query = query.Set("pincode", user.Pincode)
	}

	sql, args, err := query.Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("User not found")
		}
		if dberrors.IsDuplicateConstraintError(err, usernameConstraint) {
			return usernameTaken()
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("User not found")
	}
	return nil
}

func (r *UserRepository) listQuery(search string) squirrel.SelectBuilder {
	query := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": string(models.RoleAdmin)})
	if term := strings.TrimSpace(search); term != "" {
		pattern := helpers.ContainsPattern(term)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"username": pattern},
		})
	}
	return query.OrderBy("name ASC")
}

// List returns users whose name or username contains search
func (r *UserRepository) List(ctx context.Context, search string) ([]*models.User, error) {
	sql, args, err := r.listQuery(search).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UsernameExists reports whether username belongs to a user other than excludeID
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	query := r.sb.Select("1").Prefix("SELECT EXISTS (").From("users").
		Where(squirrel.Eq{"username": username})
	if excludeID > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build username exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// Count returns the number of admin accounts
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
