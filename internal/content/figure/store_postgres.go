package figure

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
	Table:      schema.Figure.Table,
	IDColumn:   schema.Figure.ID,
	SortColumn: schema.Figure.SortOrder,
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Figure.ID, schema.Figure.Name, schema.Figure.Slug, schema.Figure.Era,
		schema.Figure.Biography, schema.Figure.ImageURL, schema.Figure.PeriodID,
		schema.Figure.SortOrder, schema.Figure.CreatedAt, schema.Figure.UpdatedAt,
	)
}

func (repository *PostgresRepository) List(context context.Context, f Filter) ([]*Figure, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns(), schema.Figure.Table)

	args := []any{}
	if f.PeriodID != nil {
		args = append(args, *f.PeriodID)
		query += fmt.Sprintf(" WHERE %s = $1", schema.Figure.PeriodID)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Figure.SortOrder, schema.Figure.ID)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_figures")
	}
	defer rows.Close()

	figures := []*Figure{}
	for rows.Next() {
		fig := &Figure{}
		if err := rows.Scan(
			&fig.ID, &fig.Name, &fig.Slug, &fig.Era, &fig.Biography, &fig.ImageURL,
			&fig.PeriodID, &fig.SortOrder, &fig.CreatedAt, &fig.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_figure")
		}
		figures = append(figures, fig)
	}

	return figures, dberr.Wrap(rows.Err(), "list_figures")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Figure, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Figure.Table, schema.Figure.ID)

	fig := &Figure{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&fig.ID, &fig.Name, &fig.Slug, &fig.Era, &fig.Biography, &fig.ImageURL,
		&fig.PeriodID, &fig.SortOrder, &fig.CreatedAt, &fig.UpdatedAt,
	)

	return fig, dberr.Wrap(err, "get_figure")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Figure, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Figure.Table, schema.Figure.Slug)

	fig := &Figure{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&fig.ID, &fig.Name, &fig.Slug, &fig.Era, &fig.Biography, &fig.ImageURL,
		&fig.PeriodID, &fig.SortOrder, &fig.CreatedAt, &fig.UpdatedAt,
	)

	return fig, dberr.Wrap(err, "get_figure_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, fig *Figure) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE((SELECT MAX(%s) + 1 FROM %s), 0), NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.Figure.Table, schema.Figure.Name, schema.Figure.Slug, schema.Figure.Era,
		schema.Figure.Biography, schema.Figure.ImageURL, schema.Figure.PeriodID,
		schema.Figure.SortOrder, schema.Figure.CreatedAt, schema.Figure.UpdatedAt,
		schema.Figure.SortOrder, schema.Figure.Table,
		schema.Figure.ID, schema.Figure.SortOrder, schema.Figure.CreatedAt, schema.Figure.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		fig.Name, fig.Slug, fig.Era, fig.Biography, fig.ImageURL, fig.PeriodID,
	).Scan(&fig.ID, &fig.SortOrder, &fig.CreatedAt, &fig.UpdatedAt)

	return dberr.Wrap(err, "create_figure")
}

func (repository *PostgresRepository) Update(context context.Context, fig *Figure) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Figure.Table, schema.Figure.Name, schema.Figure.Slug, schema.Figure.Era,
		schema.Figure.Biography, schema.Figure.ImageURL, schema.Figure.PeriodID,
		schema.Figure.UpdatedAt, schema.Figure.ID, schema.Figure.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		fig.ID, fig.Name, fig.Slug, fig.Era, fig.Biography, fig.ImageURL, fig.PeriodID,
	).Scan(&fig.UpdatedAt)

	return dberr.Wrap(err, "update_figure")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Figure.Table, schema.Figure.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_figure")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Reorder(context context.Context, orderedIDs []int) error {
	return ordering.Reorder(context, repository.db, collection, orderedIDs)
}
