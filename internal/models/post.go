package models

// Post is one blog entry. UserID is the owning user, set when the post is
// created from an authenticated request. It becomes NULL if the owner account
// is later deleted (owned posts are intentionally not cascade-deleted).
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID *int   `json:"user_id,omitempty"`
}
