package models

import "time"

// Link makes one (user, item) pair publicly discoverable. The unique index
// on the pair is the correctness mechanism for at-most-one-link; the
// application-level existence check only improves the error message.
type Link struct {
	ID    string    `json:"id" gorm:"primaryKey;type:text"`
	User  string    `json:"user" gorm:"type:text;uniqueIndex:idx_links_user_item;index;not null"`
	Item  string    `json:"item" gorm:"type:text;uniqueIndex:idx_links_user_item;not null"`
	CDate time.Time `json:"cdate" gorm:"not null"`
}

type FriendRequest struct {
	ID       string    `json:"id" gorm:"primaryKey;type:text"`
	FromUser string    `json:"from" gorm:"type:text;index;not null"`
	ToUser   string    `json:"to" gorm:"type:text;index;not null"`
	Status   string    `json:"status" gorm:"type:text;not null"`
	CDate    time.Time `json:"cdate" gorm:"not null"`
}

type Friendship struct {
	ID    string    `json:"id" gorm:"primaryKey;type:text"`
	User1 string    `json:"user1" gorm:"type:text;index;not null"`
	User2 string    `json:"user2" gorm:"type:text;index;not null"`
	CDate time.Time `json:"cdate" gorm:"not null"`
}
