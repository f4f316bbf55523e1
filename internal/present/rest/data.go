package rest

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/usecase"
)

// handleGetData queries tracked data. Supports ?username=, ?startDate=,
// ?endDate= (RFC 3339) and ?sort=score|date. The full result always comes
// back; entries whose owner has not linked them lose the user field.
func (h *Handler) handleGetData(c echo.Context) error {
	ctx := c.Request().Context()
	viewer := h.viewer(c)

	var filter domain.DatumFilter
	if username := c.QueryParam("username"); username != "" {
		user, err := h.directory.Lookup(ctx, username)
		if err != nil {
			return h.pres.Error(c, err)
		}
		filter.User = user.ID
	}
	if start := c.QueryParam("startDate"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return presenter.BadRequestMessage(c, "startDate must be RFC 3339")
		}
		filter.Start = &t
	}
	if end := c.QueryParam("endDate"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return presenter.BadRequestMessage(c, "endDate must be RFC 3339")
		}
		filter.End = &t
	}
	switch c.QueryParam("sort") {
	case "":
		filter.Sort = domain.SortNone
	case "score":
		filter.Sort = domain.SortByScore
	case "date":
		filter.Sort = domain.SortByDate
	default:
		return presenter.BadRequestMessage(c, "sort must be score or date")
	}

	data, err := h.tracking.Query(ctx, filter)
	if err != nil {
		return h.pres.Error(c, err)
	}
	decisions, err := usecase.ResolveAll(ctx, h.resolver, viewer, data)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.Data(ctx, data, decisions)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

// handleLogData records a datum and fans it out into every active
// competition the user belongs to. Competitions that have already ended are
// skipped rather than failing the whole request.
func (h *Handler) handleLogData(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.LogDatumRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}
	if request.Date.IsZero() {
		return presenter.BadRequestMessage(c, "date must be set")
	}

	datum, err := h.tracking.Log(ctx, viewer, request.Date, request.Score)
	if err != nil {
		return h.pres.Error(c, err)
	}

	memberships, err := h.joining.GetUserMemberships(ctx, viewer)
	if err != nil {
		return h.pres.Error(c, err)
	}
	for _, membership := range memberships {
		err := h.competing.InputData(ctx, membership.Group, datum.ID)
		if err != nil {
			var ended domain.CompetitionEndedError
			if errors.As(err, &ended) {
				continue
			}
			return h.pres.Error(c, err)
		}
	}

	payload := echo.Map{}
	if request.IsLinked {
		link, err := h.linking.Link(ctx, viewer, datum.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		linkView, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		payload["link"] = linkView
	}

	view, err := h.pres.Datum(ctx, datum)
	if err != nil {
		return h.pres.Error(c, err)
	}
	payload["datum"] = view

	h.publish(ctx, stride.EventDatum, datum.ID)

	return presenter.OK(c, payload)
}

func (h *Handler) handleDeleteData(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	id := domainID(c.Param("id"))
	if err := h.tracking.AssertOwner(ctx, id, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.tracking.Delete(ctx, id); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.linking.Unlink(ctx, viewer, id); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"deleted": id.String()})
}
