package event

import "context"

type Repository interface {
	List(context context.Context, f Filter) ([]*Event, error)
	Get(context context.Context, id int) (*Event, error)
	GetBySlug(context context.Context, slug string) (*Event, error)
	Create(context context.Context, e *Event) error
	Update(context context.Context, e *Event) error
	Delete(context context.Context, id int) error
	Reorder(context context.Context, orderedIDs []int) error
}
