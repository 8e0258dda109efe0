package schema

// PeriodTable represents the 'content.period' table
type PeriodTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Timeframe   string
	Description string
	Icon        string
	SortOrder   string
	CreatedAt   string
	UpdatedAt   string
}

// Period is the schema definition for content.period
var Period = PeriodTable{
	Table:       "content.period",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Timeframe:   "timeframe",
	Description: "description",
	Icon:        "icon",
	SortOrder:   "sortorder",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t PeriodTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Timeframe, t.Description, t.Icon, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
