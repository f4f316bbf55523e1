package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/usecase"
)

// handleGetItemComments lists the comments under an item, with the same two
// listing modes as posts: redaction over the full thread, filtering when a
// single author is requested.
func (h *Handler) handleGetItemComments(c echo.Context) error {
	ctx := c.Request().Context()
	viewer := h.viewer(c)
	item := domainID(c.Param("itemId"))

	comments, err := h.commenting.GetByItem(ctx, item)
	if err != nil {
		return h.pres.Error(c, err)
	}

	if author := c.QueryParam("author"); author != "" {
		user, err := h.directory.Lookup(ctx, author)
		if err != nil {
			return h.pres.Error(c, err)
		}
		authored := make([]domain.Comment, 0, len(comments))
		for _, comment := range comments {
			if comment.Author == user.ID {
				authored = append(authored, comment)
			}
		}
		kept, err := usecase.FilterByOwner(ctx, h.resolver, viewer, user.ID, authored)
		if err != nil {
			return h.pres.Error(c, err)
		}
		views, err := h.pres.Comments(ctx, kept, nil)
		if err != nil {
			return h.pres.Error(c, err)
		}
		return presenter.OK(c, views)
	}

	decisions, err := usecase.ResolveAll(ctx, h.resolver, viewer, comments)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.Comments(ctx, comments, decisions)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleCreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.CreateCommentRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}
	if request.Content == "" {
		return presenter.BadRequestMessage(c, "content must not be empty")
	}

	item := domainID(c.Param("itemId"))
	comment, err := h.commenting.Create(ctx, viewer, item, request.Content)
	if err != nil {
		return h.pres.Error(c, err)
	}

	payload := echo.Map{}
	if request.IsLinked {
		link, err := h.linking.Link(ctx, viewer, comment.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		linkView, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		payload["link"] = linkView
	}

	view, err := h.pres.Comment(ctx, comment)
	if err != nil {
		return h.pres.Error(c, err)
	}
	payload["comment"] = view

	h.publish(ctx, stride.EventComment, comment.ID)

	return presenter.OK(c, payload)
}

func (h *Handler) handleUpdateComment(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.UpdateCommentRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.commenting.AssertAuthor(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.commenting.Update(ctx, id, request.Content); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"updated": id.String()})
}

func (h *Handler) handleDeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.commenting.AssertAuthor(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.commenting.Delete(ctx, id); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.linking.Unlink(ctx, viewer, id); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"deleted": id.String()})
}
