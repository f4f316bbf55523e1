package domain

import "time"

// Competition is a time-boxed contest owned by a single user. Data holds the
// ids of the tracked data points entered into the competition.
type Competition struct {
	ID      ID        `json:"id"`
	Name    string    `json:"name"`
	Owner   ID        `json:"owner"`
	EndDate time.Time `json:"endDate"`
	Data    []ID      `json:"data"`
	CDate   time.Time `json:"cdate"`
	MDate   time.Time `json:"mdate"`
}

// Membership records that a user has joined a group (a competition).
type Membership struct {
	ID    ID        `json:"id"`
	User  ID        `json:"user"`
	Group ID        `json:"group"`
	CDate time.Time `json:"cdate"`
}
