package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride/internal/present/rest/presenter"
)

func (h *Handler) handleGetFriends(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	friends, err := h.friending.GetFriends(ctx, viewer)
	if err != nil {
		return h.pres.Error(c, err)
	}
	usernames, err := h.directory.Names(ctx, friends)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, usernames)
}

func (h *Handler) handleRemoveFriend(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	friend, err := h.directory.Lookup(ctx, c.Param("friend"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.friending.RemoveFriend(ctx, viewer, friend.ID); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"removed": friend.Username})
}

func (h *Handler) handleGetFriendRequests(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	requests, err := h.friending.GetRequests(ctx, viewer)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.FriendRequests(ctx, requests)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleSendFriendRequest(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	to, err := h.directory.Lookup(ctx, c.Param("to"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if _, err := h.friending.SendRequest(ctx, viewer, to.ID); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"sent": to.Username})
}

func (h *Handler) handleRemoveFriendRequest(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	to, err := h.directory.Lookup(ctx, c.Param("to"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.friending.RemoveRequest(ctx, viewer, to.ID); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"removed": to.Username})
}

func (h *Handler) handleAcceptFriendRequest(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	from, err := h.directory.Lookup(ctx, c.Param("from"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.friending.AcceptRequest(ctx, from.ID, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"accepted": from.Username})
}

func (h *Handler) handleRejectFriendRequest(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	from, err := h.directory.Lookup(ctx, c.Param("from"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.friending.RejectRequest(ctx, from.ID, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"rejected": from.Username})
}
