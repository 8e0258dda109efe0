package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvhoang/vietsu/internal/content/ordering"
	"github.com/dvhoang/vietsu/internal/platform/database/schema"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var collection = ordering.Collection{
	Table:      schema.Event.Table,
	IDColumn:   schema.Event.ID,
	SortColumn: schema.Event.SortOrder,
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Event.ID, schema.Event.Name, schema.Event.Slug, schema.Event.YearLabel,
		schema.Event.Summary, schema.Event.Description, schema.Event.PeriodID,
		schema.Event.EventTypeID, schema.Event.SortOrder, schema.Event.CreatedAt, schema.Event.UpdatedAt,
	)
}

func (repository *PostgresRepository) List(context context.Context, f Filter) ([]*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE TRUE`, selectColumns(), schema.Event.Table)

	args := []any{}
	if f.PeriodID != nil {
		args = append(args, *f.PeriodID)
		query += fmt.Sprintf(" AND %s = $%s", schema.Event.PeriodID, strconv.Itoa(len(args)))
	}
	if f.EventTypeID != nil {
		args = append(args, *f.EventTypeID)
		query += fmt.Sprintf(" AND %s = $%s", schema.Event.EventTypeID, strconv.Itoa(len(args)))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Event.SortOrder, schema.Event.ID)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_events")
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Slug, &e.YearLabel, &e.Summary, &e.Description,
			&e.PeriodID, &e.EventTypeID, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_event")
		}
		events = append(events, e)
	}

	return events, dberr.Wrap(rows.Err(), "list_events")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Event.Table, schema.Event.ID)

	e := &Event{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&e.ID, &e.Name, &e.Slug, &e.YearLabel, &e.Summary, &e.Description,
		&e.PeriodID, &e.EventTypeID, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
	)

	return e, dberr.Wrap(err, "get_event")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Event.Table, schema.Event.Slug)

	e := &Event{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&e.ID, &e.Name, &e.Slug, &e.YearLabel, &e.Summary, &e.Description,
		&e.PeriodID, &e.EventTypeID, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
	)

	return e, dberr.Wrap(err, "get_event_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, e *Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE((SELECT MAX(%s) + 1 FROM %s), 0), NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.Event.Table, schema.Event.Name, schema.Event.Slug, schema.Event.YearLabel,
		schema.Event.Summary, schema.Event.Description, schema.Event.PeriodID,
		schema.Event.EventTypeID, schema.Event.SortOrder, schema.Event.CreatedAt, schema.Event.UpdatedAt,
		schema.Event.SortOrder, schema.Event.Table,
		schema.Event.ID, schema.Event.SortOrder, schema.Event.CreatedAt, schema.Event.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.Name, e.Slug, e.YearLabel, e.Summary, e.Description, e.PeriodID, e.EventTypeID,
	).Scan(&e.ID, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt)

	return dberr.Wrap(err, "create_event")
}

func (repository *PostgresRepository) Update(context context.Context, e *Event) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Event.Table, schema.Event.Name, schema.Event.Slug, schema.Event.YearLabel,
		schema.Event.Summary, schema.Event.Description, schema.Event.PeriodID,
		schema.Event.EventTypeID, schema.Event.UpdatedAt,
		schema.Event.ID, schema.Event.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.ID, e.Name, e.Slug, e.YearLabel, e.Summary, e.Description, e.PeriodID, e.EventTypeID,
	).Scan(&e.UpdatedAt)

	return dberr.Wrap(err, "update_event")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Event.Table, schema.Event.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_event")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Reorder(context context.Context, orderedIDs []int) error {
	return ordering.Reorder(context, repository.db, collection, orderedIDs)
}
