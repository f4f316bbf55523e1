package rest

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/usecase"
)

// handleGetCompetitions lists active competitions. With ?username= the
// listing narrows to competitions that user joined, and only the ones the
// user linked are shown to other viewers.
func (h *Handler) handleGetCompetitions(c echo.Context) error {
	ctx := c.Request().Context()
	viewer := h.viewer(c)

	competitions, err := h.competing.GetActive(ctx)
	if err != nil {
		return h.pres.Error(c, err)
	}

	if username := c.QueryParam("username"); username != "" {
		user, err := h.directory.Lookup(ctx, username)
		if err != nil {
			return h.pres.Error(c, err)
		}
		memberships, err := h.joining.GetUserMemberships(ctx, user.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		joined := make(map[domain.ID]struct{}, len(memberships))
		for _, membership := range memberships {
			joined[membership.Group] = struct{}{}
		}
		mine := make([]domain.Competition, 0, len(competitions))
		for _, competition := range competitions {
			if _, ok := joined[competition.ID]; ok {
				mine = append(mine, competition)
			}
		}
		// The filter owner here is the member, not the competition owner:
		// membership links are held by the joining user.
		kept, err := usecase.FilterByOwner(ctx, h.resolver, viewer, user.ID, mine)
		if err != nil {
			return h.pres.Error(c, err)
		}
		views, err := h.pres.Competitions(ctx, kept, nil)
		if err != nil {
			return h.pres.Error(c, err)
		}
		return presenter.OK(c, views)
	}

	decisions, err := usecase.ResolveAll(ctx, h.resolver, viewer, competitions)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.Competitions(ctx, competitions, decisions)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

// handleCreateCompetition creates a competition and enrolls the creator.
func (h *Handler) handleCreateCompetition(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.CreateCompetitionRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}
	if request.Name == "" {
		return presenter.BadRequestMessage(c, "name must not be empty")
	}

	competition, err := h.competing.Create(ctx, viewer, request.Name, request.EndDate)
	if err != nil {
		return h.pres.Error(c, err)
	}
	membership, err := h.joining.Join(ctx, viewer, competition.ID)
	if err != nil {
		return h.pres.Error(c, err)
	}

	payload := echo.Map{}
	if request.IsLinked {
		link, err := h.linking.Link(ctx, viewer, competition.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		linkView, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		payload["link"] = linkView
	}

	view, err := h.pres.Competition(ctx, competition)
	if err != nil {
		return h.pres.Error(c, err)
	}
	membershipView, err := h.pres.Membership(ctx, membership)
	if err != nil {
		return h.pres.Error(c, err)
	}
	payload["competition"] = view
	payload["membership"] = membershipView

	return presenter.OK(c, payload)
}

func (h *Handler) handleUpdateCompetition(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.UpdateCompetitionRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}

	competition, err := h.competing.GetByName(ctx, c.Param("competition"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.competing.AssertOwner(ctx, competition.ID, viewer); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.competing.Update(ctx, competition.ID, request.Name, request.EndDate); err != nil {
		return h.pres.Error(c, err)
	}
	if request.IsLinked != nil {
		if err := h.linking.SetLinked(ctx, viewer, competition.ID, *request.IsLinked); err != nil {
			return h.pres.Error(c, err)
		}
	}
	return presenter.OK(c, echo.Map{"updated": competition.ID.String()})
}

// handleDeleteCompetition tears the competition down: every membership is
// removed and every member's link on it is cleared along with the owner's.
func (h *Handler) handleDeleteCompetition(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	competition, err := h.competing.GetByName(ctx, c.Param("competition"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.competing.AssertOwner(ctx, competition.ID, viewer); err != nil {
		return h.pres.Error(c, err)
	}

	members, err := h.joining.GetMembers(ctx, competition.ID)
	if err != nil {
		return h.pres.Error(c, err)
	}

	if err := h.competing.Delete(ctx, competition.ID); err != nil {
		return h.pres.Error(c, err)
	}
	for _, member := range members {
		if err := h.joining.Leave(ctx, member, competition.ID); err != nil {
			var notMember domain.NotMemberError
			if !errors.As(err, &notMember) {
				return h.pres.Error(c, err)
			}
		}
		if err := h.linking.Unlink(ctx, member, competition.ID); err != nil {
			return h.pres.Error(c, err)
		}
	}
	if err := h.linking.Unlink(ctx, viewer, competition.ID); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"deleted": competition.ID.String()})
}

// visibleMemberships keeps the memberships whose member is the viewer or has
// linked the competition. Hidden memberships are dropped outright, never
// redacted, so lurking members stay invisible.
func (h *Handler) visibleMemberships(c echo.Context, memberships []domain.Membership) ([]domain.Membership, error) {
	ctx := c.Request().Context()
	viewer := h.viewer(c)

	decisions, err := usecase.ResolveAll(ctx, h.resolver, viewer, memberships)
	if err != nil {
		return nil, err
	}
	for i := range decisions {
		if decisions[i] != usecase.Keep {
			decisions[i] = usecase.Drop
		}
	}
	kept, _ := usecase.ApplyDecisions(memberships, decisions)
	return kept, nil
}

func (h *Handler) handleGetCompetitionMembers(c echo.Context) error {
	ctx := c.Request().Context()

	competition, err := h.competing.GetByName(ctx, c.Param("competition"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	memberships, err := h.joining.GetMemberships(ctx, competition.ID)
	if err != nil {
		return h.pres.Error(c, err)
	}
	visible, err := h.visibleMemberships(c, memberships)
	if err != nil {
		return h.pres.Error(c, err)
	}
	views, err := h.pres.Memberships(ctx, visible)
	if err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleJoinCompetition(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	var request stride.JoinCompetitionRequest
	if err := c.Bind(&request); err != nil {
		return presenter.BadRequest(c, err)
	}

	competition, err := h.competing.GetByName(ctx, c.Param("competition"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	membership, err := h.joining.Join(ctx, viewer, competition.ID)
	if err != nil {
		return h.pres.Error(c, err)
	}

	payload := echo.Map{}
	if request.IsLinked {
		link, err := h.linking.Link(ctx, viewer, competition.ID)
		if err != nil {
			return h.pres.Error(c, err)
		}
		linkView, err := h.pres.Link(ctx, link)
		if err != nil {
			return h.pres.Error(c, err)
		}
		payload["link"] = linkView
	}

	membershipView, err := h.pres.Membership(ctx, membership)
	if err != nil {
		return h.pres.Error(c, err)
	}
	payload["membership"] = membershipView

	return presenter.OK(c, payload)
}

func (h *Handler) handleLeaveCompetition(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.requireViewer(c)
	if err != nil {
		return h.pres.Error(c, err)
	}

	competition, err := h.competing.GetByName(ctx, c.Param("competition"))
	if err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.joining.Leave(ctx, viewer, competition.ID); err != nil {
		return h.pres.Error(c, err)
	}
	if err := h.linking.Unlink(ctx, viewer, competition.ID); err != nil {
		return h.pres.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"left": competition.ID.String()})
}

// handleGetCompetitionScores builds the leaderboard from visible members
// only, pairing each with their all-time high score.
func (h *Handler) handleGetCompetitionScores(c echo.Context) error {
	ctx := c.Request().Context()

	// Scoreboards are addressed by id, unlike the name-addressed CRUD routes.
	id := domainID(c.Param("competition"))
	if _, err := h.competing.Get(ctx, id); err != nil {
		return h.pres.Error(c, err)
	}
	memberships, err := h.joining.GetMemberships(ctx, id)
	if err != nil {
		return h.pres.Error(c, err)
	}
	visible, err := h.visibleMemberships(c, memberships)
	if err != nil {
		return h.pres.Error(c, err)
	}

	entries := make([]stride.ScoreEntry, 0, len(visible))
	for _, membership := range visible {
		high, err := h.tracking.HighScore(ctx, membership.User)
		if err != nil {
			return h.pres.Error(c, err)
		}
		username, err := h.directory.Name(ctx, membership.User)
		if err != nil {
			return h.pres.Error(c, err)
		}
		entries = append(entries, stride.ScoreEntry{Username: username, HighScore: high})
	}
	return presenter.OK(c, entries)
}
