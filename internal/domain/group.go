package domain

import "time"

// Group is a charting community. Weekly chart entries are scoped to a group.
// Membership, invites, and deletion cascades are managed elsewhere; the group
// record here only anchors chart entries.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // URL-safe, unique
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (g *Group) Touch() {
	g.UpdatedAt = time.Now()
}
