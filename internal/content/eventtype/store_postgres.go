package eventtype

import (
	"context"
	"fmt"

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
	Table:      schema.EventType.Table,
	IDColumn:   schema.EventType.ID,
	SortColumn: schema.EventType.SortOrder,
}

func (repository *PostgresRepository) List(context context.Context) ([]*EventType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
	`,
		schema.EventType.ID, schema.EventType.Name, schema.EventType.Slug,
		schema.EventType.SortOrder, schema.EventType.CreatedAt, schema.EventType.UpdatedAt,
		schema.EventType.Table, schema.EventType.SortOrder, schema.EventType.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_event_types")
	}
	defer rows.Close()

	eventTypes := []*EventType{}
	for rows.Next() {
		et := &EventType{}
		if err := rows.Scan(&et.ID, &et.Name, &et.Slug, &et.SortOrder, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_event_type")
		}
		eventTypes = append(eventTypes, et)
	}

	return eventTypes, dberr.Wrap(rows.Err(), "list_event_types")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*EventType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.EventType.ID, schema.EventType.Name, schema.EventType.Slug,
		schema.EventType.SortOrder, schema.EventType.CreatedAt, schema.EventType.UpdatedAt,
		schema.EventType.Table, schema.EventType.ID,
	)

	et := &EventType{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&et.ID, &et.Name, &et.Slug, &et.SortOrder, &et.CreatedAt, &et.UpdatedAt,
	)

	return et, dberr.Wrap(err, "get_event_type")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*EventType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.EventType.ID, schema.EventType.Name, schema.EventType.Slug,
		schema.EventType.SortOrder, schema.EventType.CreatedAt, schema.EventType.UpdatedAt,
		schema.EventType.Table, schema.EventType.Slug,
	)

	et := &EventType{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&et.ID, &et.Name, &et.Slug, &et.SortOrder, &et.CreatedAt, &et.UpdatedAt,
	)

	return et, dberr.Wrap(err, "get_event_type_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, et *EventType) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, COALESCE((SELECT MAX(%s) + 1 FROM %s), 0), NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.EventType.Table, schema.EventType.Name, schema.EventType.Slug,
		schema.EventType.SortOrder, schema.EventType.CreatedAt, schema.EventType.UpdatedAt,
		schema.EventType.SortOrder, schema.EventType.Table,
		schema.EventType.ID, schema.EventType.SortOrder, schema.EventType.CreatedAt, schema.EventType.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, et.Name, et.Slug).
		Scan(&et.ID, &et.SortOrder, &et.CreatedAt, &et.UpdatedAt)
	return dberr.Wrap(err, "create_event_type")
}

func (repository *PostgresRepository) Update(context context.Context, et *EventType) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.EventType.Table, schema.EventType.Name, schema.EventType.Slug,
		schema.EventType.UpdatedAt, schema.EventType.ID, schema.EventType.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, et.ID, et.Name, et.Slug).Scan(&et.UpdatedAt)
	return dberr.Wrap(err, "update_event_type")
}

// Delete removes the taxonomy label. Events keep their row; their
// eventtypeid reference is cleared in the same transaction.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.WrapTx(err, "delete_event_type_begin")
	}
	defer transaction.Rollback(context)

	clearQuery := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.Event.Table, schema.Event.EventTypeID, schema.Event.EventTypeID)
	if _, err := transaction.Exec(context, clearQuery, id); err != nil {
		return dberr.WrapTx(err, "delete_event_type_clear")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.EventType.Table, schema.EventType.ID)
	cmd, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.WrapTx(err, "delete_event_type")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return dberr.WrapTx(transaction.Commit(context), "delete_event_type_commit")
}

func (repository *PostgresRepository) Reorder(context context.Context, orderedIDs []int) error {
	return ordering.Reorder(context, repository.db, collection, orderedIDs)
}
