package schema

// EventTable represents the 'content.event' table
//
// PeriodID is a procedural reference to content.period: there is no DB-level
// foreign key or cascade, so referential integrity is enforced by the period
// deletion guard.
type EventTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	YearLabel   string
	Summary     string
	Description string
	PeriodID    string
	EventTypeID string
	SortOrder   string
	CreatedAt   string
	UpdatedAt   string
}

// Event is the schema definition for content.event
var Event = EventTable{
	Table:       "content.event",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	YearLabel:   "yearlabel",
	Summary:     "summary",
	Description: "description",
	PeriodID:    "periodid",
	EventTypeID: "eventtypeid",
	SortOrder:   "sortorder",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t EventTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.YearLabel, t.Summary, t.Description, t.PeriodID, t.EventTypeID, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
