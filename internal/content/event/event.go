package event

import "time"

// Event is a dated historical event, such as a battle or an uprising.
//
// PeriodID and EventTypeID are nullable references resolved procedurally;
// the period deletion guard keeps PeriodID from dangling.
type Event struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	YearLabel   *string   `json:"yearLabel"`
	Summary     *string   `json:"summary"`
	Description *string   `json:"description"`
	PeriodID    *int      `json:"periodId"`
	EventTypeID *int      `json:"eventTypeId"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows an event listing.
type Filter struct {
	PeriodID    *int
	EventTypeID *int
}

const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldYearLabel   = "yearLabel"
	FieldPeriodID    = "periodId"
	FieldEventTypeID = "eventTypeId"
)
