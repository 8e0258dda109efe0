package figure

import "context"

type Repository interface {
	List(context context.Context, f Filter) ([]*Figure, error)
	Get(context context.Context, id int) (*Figure, error)
	GetBySlug(context context.Context, slug string) (*Figure, error)
	Create(context context.Context, fig *Figure) error
	Update(context context.Context, fig *Figure) error
	Delete(context context.Context, id int) error
	Reorder(context context.Context, orderedIDs []int) error
}
