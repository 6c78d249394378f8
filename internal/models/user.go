package models

// User is a registered account. PasswordHash is never serialized to clients.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name,omitempty"`
	PasswordHash string `json:"-"`
	Posts        []Post `json:"posts,omitempty"`
}
