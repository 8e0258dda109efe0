package figure

import "time"

// Figure is a historical figure profile.
//
// PeriodID is a nullable procedural reference kept consistent by the period
// deletion guard.
type Figure struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Era       *string   `json:"era"`
	Biography *string   `json:"biography"`
	ImageURL  *string   `json:"imageUrl"`
	PeriodID  *int      `json:"periodId"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows a figure listing.
type Filter struct {
	PeriodID *int
}

const (
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldEra      = "era"
	FieldPeriodID = "periodId"
)
