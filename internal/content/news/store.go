package news

import "context"

type Repository interface {
	// List returns a page of articles, newest publication first. When
	// publishedOnly is set, drafts and future-dated articles are excluded.
	List(context context.Context, publishedOnly bool, limit, offset int) ([]*Article, int, error)
	Get(context context.Context, id int) (*Article, error)
	GetBySlug(context context.Context, slug string) (*Article, error)
	Create(context context.Context, a *Article) error
	Update(context context.Context, a *Article) error
	Delete(context context.Context, id int) error
}
