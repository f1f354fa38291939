// Package models contains data structures for the application's domain entities.
package models

// User represents a GitWise account as mirrored from the backend.
// It is replaced wholesale on login and cleared on logout.
type User struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	IsAdmin   bool   `json:"is_admin"`
	Stack     string `json:"stack"`
	Level     string `json:"level"`
	JoinDate  string `json:"join_date"`
}
