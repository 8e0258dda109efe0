package schema

// NewsTable represents the 'content.news' table
type NewsTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// News is the schema definition for content.news
var News = NewsTable{
	Table:       "content.news",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Excerpt:     "excerpt",
	Body:        "body",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t NewsTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.Excerpt, t.Body, t.PublishedAt, t.CreatedAt, t.UpdatedAt}
}
