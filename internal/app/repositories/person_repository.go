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

// PersonRepository handles database operations for one person table
// (students, faculty or staff) described by its models.Entity.
type PersonRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	entity models.Entity
}

// NewPersonRepository creates a repository for entity
func NewPersonRepository(db DBTX, entity models.Entity) *PersonRepository {
	return &PersonRepository{
		db:     db,
		sb:     statementBuilder(),
		entity: entity,
	}
}

// Entity returns the table description this repository serves
func (r *PersonRepository) Entity() models.Entity {
	return r.entity
}

func (r *PersonRepository) returning() string {
	return "RETURNING " + strings.Join(r.entity.Columns, ", ")
}

// Create inserts p and refreshes it with the stored row, including id and timestamps.
func (r *PersonRepository) Create(ctx context.Context, p models.Person) error {
	sql, args, err := r.sb.Insert(r.entity.Table).
		SetMap(p.Values()).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.entity.Table).Msg("Error building create SQL")
		return fmt.Errorf("failed to build create %s query: %w", r.entity.Table, err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(p.ScanTargets()...); err != nil {
		return r.mapWriteError(err, p)
	}
	return nil
}

// GetByID retrieves one record, or a not-found error naming the entity
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (models.Person, error) {
	sql, args, err := r.sb.Select(r.entity.Columns...).
		From(r.entity.Table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", r.entity.Table, err)
	}

	p := r.entity.New()
	if err := r.db.QueryRow(ctx, sql, args...).Scan(p.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.entity.NotFoundMessage())
		}
		logger.Error().Err(err).Str("table", r.entity.Table).Int64("id", id).Msg("Error scanning record")
		return nil, fmt.Errorf("error getting %s record: %w", r.entity.Table, err)
	}
	return p, nil
}

// Update writes every writable column of p and refreshes it with the stored row.
func (r *PersonRepository) Update(ctx context.Context, p models.Person) error {
	sql, args, err := r.sb.Update(r.entity.Table).
		SetMap(p.Values()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.GetID()}).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", r.entity.Table, err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(p.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError(r.entity.NotFoundMessage())
		}
		return r.mapWriteError(err, p)
	}
	return nil
}

func (r *PersonRepository) mapWriteError(err error, p models.Person) error {
	if dberrors.IsDuplicateConstraintError(err, r.entity.UniqueConstraint()) {
		logger.Warn().Str("table", r.entity.Table).Str("identifier", p.Identifier()).
			Msg("Unique constraint rejected identifier")
		return apperrors.NewIdentifierConflictError(
			r.entity.ConflictMessage(r.entity.Namespace), string(r.entity.Namespace))
	}
	logger.Error().Err(err).Str("table", r.entity.Table).Msg("Error writing record")
	return fmt.Errorf("error writing %s record: %w", r.entity.Table, err)
}

func (r *PersonRepository) listQuery(filter models.ListFilter) squirrel.SelectBuilder {
	query := r.sb.Select(r.entity.Columns...).From(r.entity.Table)
	query = r.applyEquals(query, filter.Equals)

	if term := strings.TrimSpace(filter.Search); term != "" && len(r.entity.SearchColumns) > 0 {
		pattern := helpers.ContainsPattern(term)
		or := squirrel.Or{}
		for _, column := range r.entity.SearchColumns {
			or = append(or, squirrel.ILike{column: pattern})
		}
		query = query.Where(or)
	}

	return query.OrderBy("name ASC")
}

// applyEquals adds one equality predicate per filterable column with a
// non-empty value, in the entity's column order.
func (r *PersonRepository) applyEquals(query squirrel.SelectBuilder, equals map[string]string) squirrel.SelectBuilder {
	for _, column := range r.entity.FilterColumns {
		if value := strings.TrimSpace(equals[column]); value != "" {
			query = query.Where(squirrel.Eq{column: value})
		}
	}
	return query
}

// List returns every record matching filter, ordered by name
func (r *PersonRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Person, error) {
	sql, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list %s query: %w", r.entity.Table, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.entity.Table).Msg("Error listing records")
		return nil, fmt.Errorf("error listing %s records: %w", r.entity.Table, err)
	}
	defer rows.Close()

	people := make([]models.Person, 0)
	for rows.Next() {
		p := r.entity.New()
		if err := rows.Scan(p.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("error scanning %s record: %w", r.entity.Table, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", r.entity.Table, err)
	}
	return people, nil
}

func (r *PersonRepository) distinctQuery(column string, equals map[string]string) squirrel.SelectBuilder {
	query := r.sb.Select(column).Distinct().
		From(r.entity.Table).
		Where(squirrel.NotEq{column: nil}).
		Where(squirrel.NotEq{column: ""})
	return r.applyEquals(query, equals).OrderBy(column + " ASC")
}

// Distinct returns the distinct non-empty values of a filterable column,
// narrowed by equals.
func (r *PersonRepository) Distinct(ctx context.Context, column string, equals map[string]string) ([]string, error) {
	if !r.entity.IsFilterable(column) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Cannot list values of %s", column))
	}

	sql, args, err := r.distinctQuery(column, equals).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct %s query: %w", column, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning distinct %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *PersonRepository) existsQuery(identifier string, excludeID int64) squirrel.SelectBuilder {
	query := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From(r.entity.Table).
		Where(squirrel.Eq{r.entity.IdentifierColumn: identifier})
	if excludeID > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}
	return query.Suffix(")")
}

// IdentifierExists reports whether identifier is used by a record other than excludeID.
// excludeID <= 0 excludes nothing.
func (r *PersonRepository) IdentifierExists(ctx context.Context, identifier string, excludeID int64) (bool, error) {
	sql, args, err := r.existsQuery(identifier, excludeID).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build identifier exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("table", r.entity.Table).Msg("Error checking identifier")
		return false, fmt.Errorf("error checking %s identifier: %w", r.entity.Table, err)
	}
	return exists, nil
}
