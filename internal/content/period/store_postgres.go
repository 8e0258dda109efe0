package period

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dvhoang/vietsu/internal/content/ordering"
	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/database/schema"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
)

// DB is the subset of [pgxpool.Pool] the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// periodCollection describes the period table to the ordering coordinator.
var periodCollection = ordering.Collection{
	Table:      schema.Period.Table,
	IDColumn:   schema.Period.ID,
	SortColumn: schema.Period.SortOrder,
}

func (repository *PostgresRepository) List(context context.Context) ([]*Period, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
	`,
		schema.Period.ID, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.SortOrder,
		schema.Period.CreatedAt, schema.Period.UpdatedAt,
		schema.Period.Table, schema.Period.SortOrder, schema.Period.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_periods")
	}
	defer rows.Close()

	return scanPeriodRows(rows)
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Period, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Period.ID, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.SortOrder,
		schema.Period.CreatedAt, schema.Period.UpdatedAt,
		schema.Period.Table, schema.Period.ID,
	)

	p := &Period{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Timeframe, &p.Description, &p.Icon,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_period")
	}

	return p, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Period, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Period.ID, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.SortOrder,
		schema.Period.CreatedAt, schema.Period.UpdatedAt,
		schema.Period.Table, schema.Period.Slug,
	)

	p := &Period{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Timeframe, &p.Description, &p.Icon,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_period_by_slug")
	}

	return p, nil
}

func (repository *PostgresRepository) Create(context context.Context, p *Period) error {
	// New periods append to the end of the display order.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, COALESCE((SELECT MAX(%s) + 1 FROM %s), 0), NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.Period.Table, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.SortOrder,
		schema.Period.CreatedAt, schema.Period.UpdatedAt,
		schema.Period.SortOrder, schema.Period.Table,
		schema.Period.ID, schema.Period.SortOrder, schema.Period.CreatedAt, schema.Period.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.Name, p.Slug, p.Timeframe, p.Description, p.Icon,
	).Scan(&p.ID, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)

	return dberr.Wrap(err, "create_period")
}

func (repository *PostgresRepository) Update(context context.Context, p *Period) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Period.Table, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.UpdatedAt,
		schema.Period.ID, schema.Period.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.Name, p.Slug, p.Timeframe, p.Description, p.Icon,
	).Scan(&p.UpdatedAt)

	return dberr.Wrap(err, "update_period")
}

// Delete removes the period only if no dependent row references it. The
// dependency check and the delete are a single statement, so a dependent
// created between the caller's scan and this call can never be orphaned.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s p
		WHERE p.%s = $1
		  AND NOT EXISTS (SELECT 1 FROM %s e WHERE e.%s = p.%s)
		  AND NOT EXISTS (SELECT 1 FROM %s f WHERE f.%s = p.%s)
		  AND NOT EXISTS (SELECT 1 FROM %s s WHERE s.%s = p.%s)
	`,
		schema.Period.Table, schema.Period.ID,
		schema.Event.Table, schema.Event.PeriodID, schema.Period.ID,
		schema.Figure.Table, schema.Figure.PeriodID, schema.Period.ID,
		schema.Site.Table, schema.Site.PeriodID, schema.Period.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_period")
	}

	if cmd.RowsAffected() == 0 {
		// Distinguish "already gone" from "dependents appeared".
		existsQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1`, schema.Period.Table, schema.Period.ID)

		var one int
		if err := repository.db.QueryRow(context, existsQuery, id).Scan(&one); err != nil {
			return dberr.Wrap(err, "delete_period_exists")
		}
		return ErrHasDependents
	}

	return nil
}

func (repository *PostgresRepository) Reorder(context context.Context, orderedIDs []int) error {
	return ordering.Reorder(context, repository.db, periodCollection, orderedIDs)
}

func (repository *PostgresRepository) ScanDependents(context context.Context, id int) (*DependencyScan, error) {
	p, err := repository.Get(context, id)
	if err != nil {
		return nil, err
	}

	scan := &DependencyScan{Period: p}

	scan.Dependents.Events, err = repository.listDependents(context,
		schema.Event.Table, schema.Event.ID, schema.Event.Name, schema.Event.Slug,
		schema.Event.PeriodID, schema.Event.SortOrder, id)
	if err != nil {
		return nil, err
	}

	scan.Dependents.Figures, err = repository.listDependents(context,
		schema.Figure.Table, schema.Figure.ID, schema.Figure.Name, schema.Figure.Slug,
		schema.Figure.PeriodID, schema.Figure.SortOrder, id)
	if err != nil {
		return nil, err
	}

	scan.Dependents.Sites, err = repository.listDependents(context,
		schema.Site.Table, schema.Site.ID, schema.Site.Name, schema.Site.Slug,
		schema.Site.PeriodID, schema.Site.SortOrder, id)
	if err != nil {
		return nil, err
	}

	// Every other period, in display order, as reassignment choices.
	availableQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s <> $1
		ORDER BY %s ASC, %s ASC
	`,
		schema.Period.ID, schema.Period.Name, schema.Period.Slug, schema.Period.Timeframe,
		schema.Period.Description, schema.Period.Icon, schema.Period.SortOrder,
		schema.Period.CreatedAt, schema.Period.UpdatedAt,
		schema.Period.Table, schema.Period.ID, schema.Period.SortOrder, schema.Period.ID,
	)

	rows, err := repository.db.Query(context, availableQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_available_periods")
	}
	defer rows.Close()

	scan.AvailablePeriods, err = scanPeriodRows(rows)
	if err != nil {
		return nil, err
	}

	return scan, nil
}

func (repository *PostgresRepository) ReassignAndDelete(context context.Context, sourceID, targetID int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.WrapTx(err, "reassign_begin")
	}
	defer transaction.Rollback(context)

	// Lock both period rows so a concurrent delete of either serializes here.
	sourceExists, targetExists, err := lockPeriodPair(context, transaction, sourceID, targetID)
	if err != nil {
		return dberr.WrapTx(err, "reassign_lock")
	}
	if !sourceExists {
		return dberr.ErrNotFound
	}
	if !targetExists {
		return apperr.ValidationError("Target period does not exist",
			apperr.FieldError{Field: FieldTarget, Message: "Must reference an existing period"})
	}

	for _, table := range []struct {
		name     string
		periodID string
	}{
		{schema.Event.Table, schema.Event.PeriodID},
		{schema.Figure.Table, schema.Figure.PeriodID},
		{schema.Site.Table, schema.Site.PeriodID},
	} {
		updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.name, table.periodID, table.periodID)
		if _, err := transaction.Exec(context, updateQuery, sourceID, targetID); err != nil {
			return dberr.WrapTx(err, "reassign_update")
		}
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Period.Table, schema.Period.ID)
	if _, err := transaction.Exec(context, deleteQuery, sourceID); err != nil {
		return dberr.WrapTx(err, "reassign_delete_period")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.WrapTx(err, "reassign_commit")
	}

	return nil
}

func (repository *PostgresRepository) PurgeAndDelete(context context.Context, sourceID int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.WrapTx(err, "purge_begin")
	}
	defer transaction.Rollback(context)

	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.Period.ID, schema.Period.Table, schema.Period.ID)

	var locked int
	if err := transaction.QueryRow(context, lockQuery, sourceID).Scan(&locked); err != nil {
		return dberr.WrapTx(err, "purge_lock")
	}

	for _, table := range []struct {
		name     string
		periodID string
	}{
		{schema.Event.Table, schema.Event.PeriodID},
		{schema.Figure.Table, schema.Figure.PeriodID},
		{schema.Site.Table, schema.Site.PeriodID},
	} {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.name, table.periodID)
		if _, err := transaction.Exec(context, deleteQuery, sourceID); err != nil {
			return dberr.WrapTx(err, "purge_dependents")
		}
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Period.Table, schema.Period.ID)
	if _, err := transaction.Exec(context, deleteQuery, sourceID); err != nil {
		return dberr.WrapTx(err, "purge_delete_period")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.WrapTx(err, "purge_commit")
	}

	return nil
}

// listDependents reads the summary rows of one dependent collection.
func (repository *PostgresRepository) listDependents(context context.Context, table, idCol, nameCol, slugCol, periodCol, sortCol string, periodID int) ([]Dependent, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`, idCol, nameCol, slugCol, table, periodCol, sortCol, idCol)

	rows, err := repository.db.Query(context, query, periodID)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_dependents")
	}
	defer rows.Close()

	dependents := []Dependent{}
	for rows.Next() {
		var d Dependent
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_dependent_row")
		}
		dependents = append(dependents, d)
	}

	return dependents, dberr.Wrap(rows.Err(), "scan_dependents")
}

// lockPeriodPair locks the source and target period rows and reports which exist.
func lockPeriodPair(context context.Context, transaction pgx.Tx, sourceID, targetID int) (sourceExists, targetExists bool, err error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) FOR UPDATE`,
		schema.Period.ID, schema.Period.Table, schema.Period.ID)

	rows, err := transaction.Query(context, query, []int{sourceID, targetID})
	if err != nil {
		return false, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return false, false, err
		}
		if id == sourceID {
			sourceExists = true
		}
		if id == targetID {
			targetExists = true
		}
	}

	return sourceExists, targetExists, rows.Err()
}

// scanPeriodRows collects full period rows from an open result set.
// The result is never nil so empty collections serialize as [].
func scanPeriodRows(rows pgx.Rows) ([]*Period, error) {
	periods := []*Period{}
	for rows.Next() {
		p := &Period{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Timeframe, &p.Description, &p.Icon,
			&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_period_row")
		}
		periods = append(periods, p)
	}

	return periods, dberr.Wrap(rows.Err(), "scan_period_rows")
}
