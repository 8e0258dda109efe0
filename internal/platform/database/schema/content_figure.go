package schema

// FigureTable represents the 'content.figure' table
type FigureTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	Era       string
	Biography string
	ImageURL  string
	PeriodID  string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// Figure is the schema definition for content.figure
var Figure = FigureTable{
	Table:     "content.figure",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	Era:       "era",
	Biography: "biography",
	ImageURL:  "imageurl",
	PeriodID:  "periodid",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t FigureTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Era, t.Biography, t.ImageURL, t.PeriodID, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
