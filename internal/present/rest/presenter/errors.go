package presenter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride/internal/domain"
)

// Error maps a domain error to an HTTP response. Errors carrying raw user
// ids have them resolved to display names before the message is rendered;
// when resolution fails the identifier is omitted rather than leaked.
func (p *Presenter) Error(c echo.Context, err error) error {
	var alreadyLinked domain.AlreadyLinkedError
	if errors.As(err, &alreadyLinked) {
		name := p.safeName(c, alreadyLinked.User)
		return c.JSON(http.StatusConflict, errorResponse{
			Error: fmt.Sprintf("%s is already linked to item %s", name, alreadyLinked.Item),
		})
	}

	var notOwner domain.NotOwnerError
	if errors.As(err, &notOwner) {
		name := p.safeName(c, notOwner.User)
		return c.JSON(http.StatusForbidden, errorResponse{
			Error: fmt.Sprintf("%s does not own this %s", name, notOwner.Kind),
		})
	}

	var alreadyMember domain.AlreadyMemberError
	if errors.As(err, &alreadyMember) {
		return c.JSON(http.StatusConflict, errorResponse{
			Error: fmt.Sprintf("%s is already a member of this competition", p.safeName(c, alreadyMember.User)),
		})
	}

	var notMember domain.NotMemberError
	if errors.As(err, &notMember) {
		return c.JSON(http.StatusForbidden, errorResponse{
			Error: fmt.Sprintf("%s is not a member of this competition", p.safeName(c, notMember.User)),
		})
	}

	var alreadyFriends domain.AlreadyFriendsError
	if errors.As(err, &alreadyFriends) {
		return c.JSON(http.StatusConflict, errorResponse{
			Error: fmt.Sprintf("%s and %s are already friends",
				p.safeName(c, alreadyFriends.User1), p.safeName(c, alreadyFriends.User2)),
		})
	}

	var friendNotFound domain.FriendNotFoundError
	if errors.As(err, &friendNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("%s and %s are not friends",
				p.safeName(c, friendNotFound.User1), p.safeName(c, friendNotFound.User2)),
		})
	}

	var requestExists domain.FriendRequestExistsError
	if errors.As(err, &requestExists) {
		return c.JSON(http.StatusConflict, errorResponse{
			Error: fmt.Sprintf("a friend request between %s and %s already exists",
				p.safeName(c, requestExists.From), p.safeName(c, requestExists.To)),
		})
	}

	var requestNotFound domain.FriendRequestNotFoundError
	if errors.As(err, &requestNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("no pending friend request between %s and %s",
				p.safeName(c, requestNotFound.From), p.safeName(c, requestNotFound.To)),
		})
	}

	var nameTaken domain.NameTakenError
	if errors.As(err, &nameTaken) {
		return c.JSON(http.StatusConflict, errorResponse{Error: nameTaken.Error()})
	}

	var dateNotFuture domain.DateNotFutureError
	if errors.As(err, &dateNotFuture) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: dateNotFuture.Error()})
	}

	var ended domain.CompetitionEndedError
	if errors.As(err, &ended) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: ended.Error()})
	}

	if errors.Is(err, domain.ErrUnauthenticated) {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	}

	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	// Anything else is a terminal failure for this request; no partial
	// results are returned.
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (p *Presenter) safeName(c echo.Context, id domain.ID) string {
	name, err := p.dir.Name(c.Request().Context(), id)
	if err != nil || name == "" {
		return "this user"
	}
	return name
}
