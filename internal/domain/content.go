package domain

import "time"

// Post is a user-authored post.
type Post struct {
	ID              ID        `json:"id"`
	Author          ID        `json:"author"`
	Content         string    `json:"content"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	CDate           time.Time `json:"cdate"`
	MDate           time.Time `json:"mdate"`
}

// Comment is a user-authored comment attached to some item (a post or
// another comment).
type Comment struct {
	ID      ID        `json:"id"`
	Author  ID        `json:"author"`
	Item    ID        `json:"item"`
	Content string    `json:"content"`
	CDate   time.Time `json:"cdate"`
	MDate   time.Time `json:"mdate"`
}
