package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/usecase"
)

// handleGetPosts lists posts. Without a filter every post is returned and
// unlinked posts of other users come back with the author removed. With
// ?author= the listing is filtered instead: the author sees everything,
// everyone else only what the author linked.
func (h *Handler) handleGetPosts(c echo.Context) error {
	ctx := c.Request().Context()
	viewer := h.viewer(c)

	if author := c.QueryParam("author"); author != "" {
		user, err := h.directory.Lookup(ctx, author)
		if err != nil {
			return h.pres.Error(c, err)
		}
		posts, err := h.posting.GetByAuthor(ctx, user.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		kept, err := usecase.FilterByOwner(ctx, h.resolver, viewer, user.ID, posts)
		if err != nil {
			return h.pres.Error(c, err)
		}
		views, err := h.pres.Posts(ctx, kept, nil)
		if err != nil {
			return h.pres.Error(c, err)
		}
		return presenter.OK(c, views)
	}

	posts, err := h.posting.GetAll(ctx)
	if err != nil {
		return h.pres.Error(c, err)
	}
	decisions, err := usecase.ResolveAll(ctx, h.resolver, viewer, posts)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.Posts(ctx, posts, decisions)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleCreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.CreatePostRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}
	if request.Content == "" {
		return presenter.BadRequestMessage(c, "content must not be empty")
	}

	post, err := h.posting.Create(ctx, viewer, request.Content, request.BackgroundColor)
	if err != nil {
		return h.pres.Error(c, err)
	}

	payload := echo.Map{}
	if request.IsLinked {
		link, err := h.linking.Link(ctx, viewer, post.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		linkView, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		payload["link"] = linkView
	}

	view, err := h.pres.Post(ctx, post)
	if err != nil {
		return h.pres.Error(c, err)
	}
	payload["post"] = view

	h.publish(ctx, stride.EventPost, post.ID)

	return presenter.OK(c, payload)
}

func (h *Handler) handleUpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.UpdatePostRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.posting.AssertAuthor(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.posting.Update(ctx, id, request.Content, request.BackgroundColor); err != nil {
		return h.pres.Error(c, err)
	}

	post, err := h.posting.Get(ctx, id)
	if err != nil {
		return h.pres.Error(c, err)
	}
	view, err := h.pres.Post(ctx, post)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, view)
}

// handleDeletePost removes the post and any link the author held on it, so
// no dangling link can ever resurface the id.
func (h *Handler) handleDeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.posting.AssertAuthor(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.posting.Delete(ctx, id); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.linking.Unlink(ctx, viewer, id); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"deleted": id.String()})
}
