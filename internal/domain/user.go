package domain

import "time"

// User represents a registered community member.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"` // Never serialized
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// PublicUser is the subset of user data safe to show to other members.
type PublicUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Public returns the member-visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, DisplayName: u.DisplayName}
}
