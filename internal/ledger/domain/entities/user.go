package entities

// User owns entries. Password is an opaque credential and is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
