package eventtype

import "time"

// EventType is the taxonomy label attached to historical events, such as
// battles, uprisings, or dynastic changes.
type EventType struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	FieldName = "name"
	FieldSlug = "slug"
)
