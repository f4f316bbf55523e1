package domain

import "time"

// Link asserts that a user has made one of their items publicly
// discoverable. At most one Link exists per (user, item) pair; the links
// table carries a unique index on the pair. Links refer to items by id only
// and are never dereferenced, so a Link may outlive its target.
type Link struct {
	ID    ID        `json:"id"`
	User  ID        `json:"user"`
	Item  ID        `json:"item"`
	CDate time.Time `json:"cdate"`
}
