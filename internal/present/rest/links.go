package rest

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/usecase"
)

// linkTarget adapts one content concept to the shared link endpoints. The
// closures are the only per-concept pieces: which ids exist, which belong to
// a user, and who may link an item.
type linkTarget struct {
	ownedIDs    func(ctx context.Context, owner domain.ID) ([]domain.ID, error)
	allIDs      func(ctx context.Context) ([]domain.ID, error)
	assertOwner func(ctx context.Context, item, user domain.ID) error
}

func (h *Handler) registerLinkRoutes(e *echo.Echo) {
	targets := map[string]linkTarget{
		"posts": {
			ownedIDs: func(ctx context.Context, owner domain.ID) ([]domain.ID, error) {
				posts, err := h.posting.GetByAuthor(ctx, owner)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(posts))
				for i, post := range posts {
					ids[i] = post.ID
				}
				return ids, nil
			},
			allIDs: func(ctx context.Context) ([]domain.ID, error) {
				posts, err := h.posting.GetAll(ctx)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(posts))
				for i, post := range posts {
					ids[i] = post.ID
				}
				return ids, nil
			},
			assertOwner: h.posting.AssertAuthor,
		},
		"comments": {
			ownedIDs: func(ctx context.Context, owner domain.ID) ([]domain.ID, error) {
				comments, err := h.commenting.GetByAuthor(ctx, owner)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(comments))
				for i, comment := range comments {
					ids[i] = comment.ID
				}
				return ids, nil
			},
			allIDs: func(ctx context.Context) ([]domain.ID, error) {
				comments, err := h.commenting.GetAll(ctx)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(comments))
				for i, comment := range comments {
					ids[i] = comment.ID
				}
				return ids, nil
			},
			assertOwner: h.commenting.AssertAuthor,
		},
		"data": {
			ownedIDs: func(ctx context.Context, owner domain.ID) ([]domain.ID, error) {
				data, err := h.tracking.GetByUser(ctx, owner)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(data))
				for i, datum := range data {
					ids[i] = datum.ID
				}
				return ids, nil
			},
			allIDs: func(ctx context.Context) ([]domain.ID, error) {
				data, err := h.tracking.Query(ctx, domain.DatumFilter{})
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(data))
				for i, datum := range data {
					ids[i] = datum.ID
				}
				return ids, nil
			},
			assertOwner: h.tracking.AssertOwner,
		},
		"competitions": {
			ownedIDs: func(ctx context.Context, owner domain.ID) ([]domain.ID, error) {
				// Competition links are held by members, so ownership here
				// means membership rather than authorship.
				memberships, err := h.joining.GetUserMemberships(ctx, owner)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(memberships))
				for i, membership := range memberships {
					ids[i] = membership.Group
				}
				return ids, nil
			},
			allIDs: func(ctx context.Context) ([]domain.ID, error) {
				competitions, err := h.competing.GetAll(ctx)
				if err != nil {
					return nil, err
				}
				ids := make([]domain.ID, len(competitions))
				for i, competition := range competitions {
					ids[i] = competition.ID
				}
				return ids, nil
			},
			assertOwner: h.assertCompetitionMember,
		},
	}

	for name, target := range targets {
		e.GET("/links/"+name, h.handleListLinks(target))
		e.POST("/links/"+name, h.handleCreateLink(target))
		e.DELETE("/links/"+name+"/:id", h.handleDeleteLink)
	}
}

func (h *Handler) assertCompetitionMember(ctx context.Context, item, user domain.ID) error {
	memberships, err := h.joining.GetUserMemberships(ctx, user)
	if err != nil {
		return err
	}
	for _, membership := range memberships {
		if membership.Group == item {
			return nil
		}
	}
	return domain.NotMemberError{User: user, Group: item}
}

// handleGetUserItemLink fetches the caller's link on one item, null when the
// item is not linked.
func (h *Handler) handleGetUserItemLink(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	itemID := c.QueryParam("itemId")
	if itemID == "" {
		return presenter.BadRequestMessage(c, "itemId is required")
	}

	link, err := h.linking.GetByUserItem(ctx, viewer, domainID(itemID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.OK(c, nil)
		}
		return h.pres.Error(c, err)
	}
	view, err := h.pres.Link(ctx, link)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, view)
}

// handleListLinks lists every link whose item belongs to the target concept,
// optionally narrowed to one user's items with ?username=.
func (h *Handler) handleListLinks(target linkTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var (
			ids []domain.ID
			err error
		)
		if username := c.QueryParam("username"); username != "" {
			user, lookupErr := h.directory.Lookup(ctx, username)
			if lookupErr != nil {
				return h.pres.Error(c, lookupErr)
			}
			ids, err = target.ownedIDs(ctx, user.ID)
		} else {
			ids, err = target.allIDs(ctx)
		}
		if err != nil {
			return h.pres.Error(c, err)
		}

		links, err := h.linking.GetLinks(ctx)
		if err != nil {
			return h.pres.Error(c, err)
		}
		set := make(map[domain.ID]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		views, err := h.pres.Links(ctx, usecase.FilterByItems(links, set))
		if err != nil {
			return h.pres.Error(c, err)
		}
		return presenter.OK(c, views)
	}
}

// handleCreateLink links an item of the target concept for the caller. Only
// items the caller owns can be linked, and a pair can exist once.
func (h *Handler) handleCreateLink(target linkTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		viewer, err := h.requireViewer(c)
		if err != nil {
			return h.pres.Error(c, err)
		}

		var request stride.CreateLinkRequest
		if err := c.Bind(&request); err != nil {
			return presenter.BadRequest(c, err)
		}
		if request.ItemID == "" {
			return presenter.BadRequestMessage(c, "itemId is required")
		}

		item := domainID(request.ItemID)
		if err := target.assertOwner(ctx, item, viewer); err != nil {
			return h.pres.Error(c, err)
		}
		link, err := h.linking.Link(ctx, viewer, item)
		if err != nil {
			return h.pres.Error(c, err)
		}
		view, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		return presenter.OK(c, view)
	}
}

func (h *Handler) handleDeleteLink(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.linking.Delete(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"deleted": id.String()})
}
