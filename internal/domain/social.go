package domain

import "time"

// User is the identity view exposed to this service: an opaque id and the
// public display name. Credential management lives elsewhere.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Friend request states.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

// FriendRequest is a directed friendship request.
type FriendRequest struct {
	ID     ID        `json:"id"`
	From   ID        `json:"from"`
	To     ID        `json:"to"`
	Status string    `json:"status"`
	CDate  time.Time `json:"cdate"`
}

// Friendship is an undirected friend relation between two users.
type Friendship struct {
	ID    ID        `json:"id"`
	User1 ID        `json:"user1"`
	User2 ID        `json:"user2"`
	CDate time.Time `json:"cdate"`
}
