// Package stride holds the wire types shared by the REST presenter and the
// Go client. Listing responses carry the owner as a resolved display name;
// when the owner is redacted the field is absent from the payload entirely,
// never null.
package stride

import "time"

// Post is the display form of a post.
type Post struct {
	ID              string    `json:"id"`
	Author          string    `json:"author,omitempty"`
	Content         string    `json:"content"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	CDate           time.Time `json:"cdate"`
	MDate           time.Time `json:"mdate"`
}

// Comment is the display form of a comment.
type Comment struct {
	ID      string    `json:"id"`
	Author  string    `json:"author,omitempty"`
	Item    string    `json:"item"`
	Content string    `json:"content"`
	CDate   time.Time `json:"cdate"`
	MDate   time.Time `json:"mdate"`
}

// Datum is the display form of a tracked data point.
type Datum struct {
	ID    string    `json:"id"`
	User  string    `json:"user,omitempty"`
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	CDate time.Time `json:"cdate"`
}

// Competition is the display form of a competition, its entered data
// expanded and formatted in turn.
type Competition struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Owner   string    `json:"owner,omitempty"`
	EndDate time.Time `json:"endDate"`
	Data    []Datum   `json:"data"`
	CDate   time.Time `json:"cdate"`
	MDate   time.Time `json:"mdate"`
}

// Membership is the display form of a competition membership.
type Membership struct {
	ID    string    `json:"id"`
	User  string    `json:"user,omitempty"`
	Group string    `json:"group"`
	CDate time.Time `json:"cdate"`
}

// Link is the display form of a link; the user is always attributed since a
// link is itself a publication decision.
type Link struct {
	ID    string    `json:"id"`
	User  string    `json:"user"`
	Item  string    `json:"item"`
	CDate time.Time `json:"cdate"`
}

// FriendRequest is the display form of a friend request, both ends resolved
// to display names.
type FriendRequest struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Status string    `json:"status"`
	CDate  time.Time `json:"cdate"`
}

// ScoreEntry is one row of a competition leaderboard.
type ScoreEntry struct {
	Username  string `json:"username"`
	HighScore int    `json:"highScore"`
}

// Event is a creation notification on the realtime feed. It names the kind
// and id of the created entity only.
type Event struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event kinds.
const (
	EventPost    = "post"
	EventComment = "comment"
	EventDatum   = "datum"
)

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Content         string `json:"content"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	IsLinked        bool   `json:"isLinked,omitempty"`
}

// UpdatePostRequest is the body of PATCH /posts/:id.
type UpdatePostRequest struct {
	Content         *string `json:"content,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// CreateCommentRequest is the body of POST /items/:itemId/comments.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	IsLinked bool   `json:"isLinked,omitempty"`
}

// UpdateCommentRequest is the body of PATCH /comments/:id.
type UpdateCommentRequest struct {
	Content *string `json:"content,omitempty"`
}

// LogDatumRequest is the body of POST /data.
type LogDatumRequest struct {
	Date     time.Time `json:"date"`
	Score    int       `json:"score"`
	IsLinked bool      `json:"isLinked,omitempty"`
}

// CreateCompetitionRequest is the body of POST /competitions.
type CreateCompetitionRequest struct {
	Name     string    `json:"name"`
	EndDate  time.Time `json:"endDate"`
	IsLinked bool      `json:"isLinked,omitempty"`
}

// UpdateCompetitionRequest is the body of PATCH /competitions/:name.
type UpdateCompetitionRequest struct {
	Name     *string    `json:"name,omitempty"`
	EndDate  *time.Time `json:"endDate,omitempty"`
	IsLinked *bool      `json:"isLinked,omitempty"`
}

// JoinCompetitionRequest is the body of POST /competitions/:name/users.
type JoinCompetitionRequest struct {
	IsLinked bool `json:"isLinked,omitempty"`
}

// CreateLinkRequest is the body of the POST /links/* endpoints.
type CreateLinkRequest struct {
	ItemID string `json:"itemId"`
}
