package domain

import (
	"fmt"
	"time"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ErrConflict is returned by repositories when a storage-level uniqueness
// constraint rejects a write. Usecases translate it into a concept error.
var ErrConflict = fmt.Errorf("conflict")

// ErrUnauthenticated is returned when an operation requires a viewer
// identity and none was supplied.
var ErrUnauthenticated = fmt.Errorf("authentication required")

// AlreadyLinkedError is returned when a (user, item) pair is linked twice.
// It carries raw ids; the presenter resolves the user id to a display name
// before the message reaches a client.
type AlreadyLinkedError struct {
	User ID
	Item ID
}

func (e AlreadyLinkedError) Error() string {
	return fmt.Sprintf("user %s is already linked to item %s", e.User, e.Item)
}

// NotOwnerError is returned when a user acts on a resource they do not own.
type NotOwnerError struct {
	User     ID
	Resource ID
	Kind     string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("user %s does not own %s %s", e.User, e.Kind, e.Resource)
}

// AlreadyMemberError is returned when a user joins a group twice.
type AlreadyMemberError struct {
	User  ID
	Group ID
}

func (e AlreadyMemberError) Error() string {
	return fmt.Sprintf("user %s is already a member of group %s", e.User, e.Group)
}

// NotMemberError is returned when a user leaves a group they never joined.
type NotMemberError struct {
	User  ID
	Group ID
}

func (e NotMemberError) Error() string {
	return fmt.Sprintf("user %s is not a member of group %s", e.User, e.Group)
}

// AlreadyFriendsError is returned when a friend request targets an existing
// friend.
type AlreadyFriendsError struct {
	User1 ID
	User2 ID
}

func (e AlreadyFriendsError) Error() string {
	return fmt.Sprintf("users %s and %s are already friends", e.User1, e.User2)
}

// FriendNotFoundError is returned when removing a friendship that does not
// exist.
type FriendNotFoundError struct {
	User1 ID
	User2 ID
}

func (e FriendNotFoundError) Error() string {
	return fmt.Sprintf("users %s and %s are not friends", e.User1, e.User2)
}

// FriendRequestExistsError is returned when a pending request between the
// pair already exists.
type FriendRequestExistsError struct {
	From ID
	To   ID
}

func (e FriendRequestExistsError) Error() string {
	return fmt.Sprintf("friend request from %s to %s already exists", e.From, e.To)
}

// FriendRequestNotFoundError is returned when acting on a pending request
// that does not exist.
type FriendRequestNotFoundError struct {
	From ID
	To   ID
}

func (e FriendRequestNotFoundError) Error() string {
	return fmt.Sprintf("friend request from %s to %s does not exist", e.From, e.To)
}

// NameTakenError is returned when a competition name collides.
type NameTakenError struct {
	Name string
}

func (e NameTakenError) Error() string {
	return fmt.Sprintf("competition %q already exists", e.Name)
}

// DateNotFutureError is returned when a competition end date is in the past.
type DateNotFutureError struct {
	Date time.Time
}

func (e DateNotFutureError) Error() string {
	return fmt.Sprintf("date %s is not in the future", e.Date.Format("2006-01-02"))
}

// CompetitionEndedError is returned when mutating a competition past its end
// date.
type CompetitionEndedError struct {
	Name string
}

func (e CompetitionEndedError) Error() string {
	return fmt.Sprintf("competition %q has already ended", e.Name)
}
