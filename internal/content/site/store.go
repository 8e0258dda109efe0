package site

import "context"

type Repository interface {
	List(context context.Context, f Filter) ([]*Site, error)
	Get(context context.Context, id int) (*Site, error)
	GetBySlug(context context.Context, slug string) (*Site, error)
	Create(context context.Context, s *Site) error
	Update(context context.Context, s *Site) error
	Delete(context context.Context, id int) error
	Reorder(context context.Context, orderedIDs []int) error
}
