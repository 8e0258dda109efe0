package schema

// EventTypeTable represents the 'content.event_type' table
type EventTypeTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// EventType is the schema definition for content.event_type
var EventType = EventTypeTable{
	Table:     "content.event_type",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t EventTypeTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
