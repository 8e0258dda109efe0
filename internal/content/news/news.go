package news

import "time"

// Article is a news post for the education site, ordered by publication
// date rather than a manual sort order.
type Article struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Published reports whether the article is visible to the public.
func (a *Article) Published() bool {
	return a.PublishedAt != nil && !a.PublishedAt.After(time.Now())
}

const (
	FieldTitle = "title"
	FieldSlug  = "slug"
	FieldBody  = "body"
)
