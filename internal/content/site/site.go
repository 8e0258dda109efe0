package site

import "time"

// Site is a historical site or landmark.
//
// PeriodID is a nullable procedural reference kept consistent by the period
// deletion guard.
type Site struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	PeriodID    *int      `json:"periodId"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows a site listing.
type Filter struct {
	PeriodID *int
}

const (
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldLocation = "location"
	FieldPeriodID = "periodId"
)
