package site

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
	Table:      schema.Site.Table,
	IDColumn:   schema.Site.ID,
	SortColumn: schema.Site.SortOrder,
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Site.ID, schema.Site.Name, schema.Site.Slug, schema.Site.Location,
		schema.Site.Description, schema.Site.ImageURL, schema.Site.PeriodID,
		schema.Site.SortOrder, schema.Site.CreatedAt, schema.Site.UpdatedAt,
	)
}

func (repository *PostgresRepository) List(context context.Context, f Filter) ([]*Site, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns(), schema.Site.Table)

	args := []any{}
	if f.PeriodID != nil {
		args = append(args, *f.PeriodID)
		query += fmt.Sprintf(" WHERE %s = $1", schema.Site.PeriodID)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Site.SortOrder, schema.Site.ID)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sites")
	}
	defer rows.Close()

	sites := []*Site{}
	for rows.Next() {
		s := &Site{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Slug, &s.Location, &s.Description, &s.ImageURL,
			&s.PeriodID, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_site")
		}
		sites = append(sites, s)
	}

	return sites, dberr.Wrap(rows.Err(), "list_sites")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Site, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Site.Table, schema.Site.ID)

	s := &Site{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.Name, &s.Slug, &s.Location, &s.Description, &s.ImageURL,
		&s.PeriodID, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
	)

	return s, dberr.Wrap(err, "get_site")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Site, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Site.Table, schema.Site.Slug)

	s := &Site{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&s.ID, &s.Name, &s.Slug, &s.Location, &s.Description, &s.ImageURL,
		&s.PeriodID, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
	)

	return s, dberr.Wrap(err, "get_site_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, s *Site) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE((SELECT MAX(%s) + 1 FROM %s), 0), NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.Site.Table, schema.Site.Name, schema.Site.Slug, schema.Site.Location,
		schema.Site.Description, schema.Site.ImageURL, schema.Site.PeriodID,
		schema.Site.SortOrder, schema.Site.CreatedAt, schema.Site.UpdatedAt,
		schema.Site.SortOrder, schema.Site.Table,
		schema.Site.ID, schema.Site.SortOrder, schema.Site.CreatedAt, schema.Site.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.Name, s.Slug, s.Location, s.Description, s.ImageURL, s.PeriodID,
	).Scan(&s.ID, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)

	return dberr.Wrap(err, "create_site")
}

func (repository *PostgresRepository) Update(context context.Context, s *Site) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Site.Table, schema.Site.Name, schema.Site.Slug, schema.Site.Location,
		schema.Site.Description, schema.Site.ImageURL, schema.Site.PeriodID,
		schema.Site.UpdatedAt, schema.Site.ID, schema.Site.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.Name, s.Slug, s.Location, s.Description, s.ImageURL, s.PeriodID,
	).Scan(&s.UpdatedAt)

	return dberr.Wrap(err, "update_site")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Site.Table, schema.Site.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_site")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Reorder(context context.Context, orderedIDs []int) error {
	return ordering.Reorder(context, repository.db, collection, orderedIDs)
}
