package schema

// SiteTable represents the 'content.site' table
type SiteTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Location    string
	Description string
	ImageURL    string
	PeriodID    string
	SortOrder   string
	CreatedAt   string
	UpdatedAt   string
}

// Site is the schema definition for content.site
var Site = SiteTable{
	Table:       "content.site",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Location:    "location",
	Description: "description",
	ImageURL:    "imageurl",
	PeriodID:    "periodid",
	SortOrder:   "sortorder",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t SiteTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Location, t.Description, t.ImageURL, t.PeriodID, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
