package category

import "time"

// OtherName is the default category expenses fall back to when their own
// category is deleted.
const OtherName = "Other"

// Category is either a shared default (UserID nil) or owned by one user.
type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsDefault bool      `db:"is_default" json:"isDefault"`
	UserID    *string   `db:"user_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Response is the API-facing shape of a category.
type Response struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt"`
}

func Format(c *Category) Response {
	return Response{
		ID:        c.ID,
		Name:      c.Name,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func FormatList(categories []Category) []Response {
	out := make([]Response, 0, len(categories))
	for i := range categories {
		out = append(out, Format(&categories[i]))
	}
	return out
}
