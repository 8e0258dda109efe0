package eventtype

import "context"

type Repository interface {
	List(context context.Context) ([]*EventType, error)
	Get(context context.Context, id int) (*EventType, error)
	GetBySlug(context context.Context, slug string) (*EventType, error)
	Create(context context.Context, et *EventType) error
	Update(context context.Context, et *EventType) error
	Delete(context context.Context, id int) error
	Reorder(context context.Context, orderedIDs []int) error
}
