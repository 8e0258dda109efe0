package news

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvhoang/vietsu/internal/platform/database/schema"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		schema.News.ID, schema.News.Title, schema.News.Slug, schema.News.Excerpt,
		schema.News.Body, schema.News.PublishedAt, schema.News.CreatedAt, schema.News.UpdatedAt,
	)
}

func (repository *PostgresRepository) List(context context.Context, publishedOnly bool, limit, offset int) ([]*Article, int, error) {
	where := "TRUE"
	if publishedOnly {
		where = fmt.Sprintf("%s IS NOT NULL AND %s <= NOW()", schema.News.PublishedAt, schema.News.PublishedAt)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.News.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_news")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC NULLS LAST, %s DESC
		LIMIT $1 OFFSET $2
	`, selectColumns(), schema.News.Table, where, schema.News.PublishedAt, schema.News.ID)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_news")
	}
	defer rows.Close()

	articles := []*Article{}
	for rows.Next() {
		a := &Article{}
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body,
			&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, a)
	}

	return articles, total, dberr.Wrap(rows.Err(), "list_news")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.News.Table, schema.News.ID)

	a := &Article{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)

	return a, dberr.Wrap(err, "get_article")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.News.Table, schema.News.Slug)

	a := &Article{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)

	return a, dberr.Wrap(err, "get_article_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, a *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.News.Table, schema.News.Title, schema.News.Slug, schema.News.Excerpt,
		schema.News.Body, schema.News.PublishedAt, schema.News.CreatedAt, schema.News.UpdatedAt,
		schema.News.ID, schema.News.CreatedAt, schema.News.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.Title, a.Slug, a.Excerpt, a.Body, a.PublishedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return dberr.Wrap(err, "create_article")
}

func (repository *PostgresRepository) Update(context context.Context, a *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.News.Table, schema.News.Title, schema.News.Slug, schema.News.Excerpt,
		schema.News.Body, schema.News.PublishedAt, schema.News.UpdatedAt,
		schema.News.ID, schema.News.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Body, a.PublishedAt,
	).Scan(&a.UpdatedAt)

	return dberr.Wrap(err, "update_article")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.News.Table, schema.News.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_article")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
