// Package presenter converts domain entities into their display form and
// renders errors. Owner identities leave this package as resolved display
// names or not at all; raw ids never reach a client.
package presenter

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/service"
	"github.com/strideworks/stride/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

// DataFetcher loads the tracked data entered into a competition so its
// display form can expand datum ids into formatted data points.
type DataFetcher interface {
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Datum, error)
}

type Presenter struct {
	dir  *service.DirectoryService
	data DataFetcher
}

func New(dir *service.DirectoryService, data DataFetcher) *Presenter {
	return &Presenter{dir: dir, data: data}
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// Posts projects posts into display form. decisions aligns by index; a nil
// decisions slice attributes every post. One batch name resolution serves
// the whole listing.
func (p *Presenter) Posts(ctx context.Context, posts []domain.Post, decisions []usecase.Decision) ([]stride.Post, error) {
	owners := make([]domain.ID, len(posts))
	for i, post := range posts {
		owners[i] = post.Author
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Post, len(posts))
	for i, post := range posts {
		views[i] = stride.Post{
			ID:              post.ID.String(),
			Content:         post.Content,
			BackgroundColor: post.BackgroundColor,
			CDate:           post.CDate,
			MDate:           post.MDate,
		}
		if decisions == nil || decisions[i] == usecase.Keep {
			views[i].Author = names[i]
		}
	}
	return views, nil
}

func (p *Presenter) Post(ctx context.Context, post domain.Post) (stride.Post, error) {
	views, err := p.Posts(ctx, []domain.Post{post}, nil)
	if err != nil {
		return stride.Post{}, err
	}
	return views[0], nil
}

func (p *Presenter) Comments(ctx context.Context, comments []domain.Comment, decisions []usecase.Decision) ([]stride.Comment, error) {
	owners := make([]domain.ID, len(comments))
	for i, comment := range comments {
		owners[i] = comment.Author
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Comment, len(comments))
	for i, comment := range comments {
		views[i] = stride.Comment{
			ID:      comment.ID.String(),
			Item:    comment.Item.String(),
			Content: comment.Content,
			CDate:   comment.CDate,
			MDate:   comment.MDate,
		}
		if decisions == nil || decisions[i] == usecase.Keep {
			views[i].Author = names[i]
		}
	}
	return views, nil
}

func (p *Presenter) Comment(ctx context.Context, comment domain.Comment) (stride.Comment, error) {
	views, err := p.Comments(ctx, []domain.Comment{comment}, nil)
	if err != nil {
		return stride.Comment{}, err
	}
	return views[0], nil
}

func (p *Presenter) Data(ctx context.Context, data []domain.Datum, decisions []usecase.Decision) ([]stride.Datum, error) {
	owners := make([]domain.ID, len(data))
	for i, d := range data {
		owners[i] = d.User
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Datum, len(data))
	for i, d := range data {
		views[i] = stride.Datum{
			ID:    d.ID.String(),
			Date:  d.Date,
			Score: d.Score,
			CDate: d.CDate,
		}
		if decisions == nil || decisions[i] == usecase.Keep {
			views[i].User = names[i]
		}
	}
	return views, nil
}

func (p *Presenter) Datum(ctx context.Context, datum domain.Datum) (stride.Datum, error) {
	views, err := p.Data(ctx, []domain.Datum{datum}, nil)
	if err != nil {
		return stride.Datum{}, err
	}
	return views[0], nil
}

func (p *Presenter) Competitions(ctx context.Context, competitions []domain.Competition, decisions []usecase.Decision) ([]stride.Competition, error) {
	owners := make([]domain.ID, len(competitions))
	for i, competition := range competitions {
		owners[i] = competition.Owner
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Competition, len(competitions))
	for i, competition := range competitions {
		data, err := p.data.GetByIDs(ctx, competition.Data)
		if err != nil {
			return nil, err
		}
		dataViews, err := p.Data(ctx, data, nil)
		if err != nil {
			return nil, err
		}
		views[i] = stride.Competition{
			ID:      competition.ID.String(),
			Name:    competition.Name,
			EndDate: competition.EndDate,
			Data:    dataViews,
			CDate:   competition.CDate,
			MDate:   competition.MDate,
		}
		if decisions == nil || decisions[i] == usecase.Keep {
			views[i].Owner = names[i]
		}
	}
	return views, nil
}

func (p *Presenter) Competition(ctx context.Context, competition domain.Competition) (stride.Competition, error) {
	views, err := p.Competitions(ctx, []domain.Competition{competition}, nil)
	if err != nil {
		return stride.Competition{}, err
	}
	return views[0], nil
}

func (p *Presenter) Memberships(ctx context.Context, memberships []domain.Membership) ([]stride.Membership, error) {
	owners := make([]domain.ID, len(memberships))
	for i, m := range memberships {
		owners[i] = m.User
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Membership, len(memberships))
	for i, m := range memberships {
		views[i] = stride.Membership{
			ID:    m.ID.String(),
			User:  names[i],
			Group: m.Group.String(),
			CDate: m.CDate,
		}
	}
	return views, nil
}

func (p *Presenter) Membership(ctx context.Context, membership domain.Membership) (stride.Membership, error) {
	views, err := p.Memberships(ctx, []domain.Membership{membership})
	if err != nil {
		return stride.Membership{}, err
	}
	return views[0], nil
}

func (p *Presenter) Links(ctx context.Context, links []domain.Link) ([]stride.Link, error) {
	owners := make([]domain.ID, len(links))
	for i, link := range links {
		owners[i] = link.User
	}
	names, err := p.dir.Names(ctx, owners)
	if err != nil {
		return nil, err
	}

	views := make([]stride.Link, len(links))
	for i, link := range links {
		views[i] = stride.Link{
			ID:    link.ID.String(),
			User:  names[i],
			Item:  link.Item.String(),
			CDate: link.CDate,
		}
	}
	return views, nil
}

func (p *Presenter) Link(ctx context.Context, link domain.Link) (stride.Link, error) {
	views, err := p.Links(ctx, []domain.Link{link})
	if err != nil {
		return stride.Link{}, err
	}
	return views[0], nil
}

func (p *Presenter) FriendRequests(ctx context.Context, requests []domain.FriendRequest) ([]stride.FriendRequest, error) {
	ids := make([]domain.ID, 0, len(requests)*2)
	for _, r := range requests {
		ids = append(ids, r.From, r.To)
	}
	names, err := p.dir.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]stride.FriendRequest, len(requests))
	for i, r := range requests {
		views[i] = stride.FriendRequest{
			ID:     r.ID.String(),
			From:   names[i*2],
			To:     names[i*2+1],
			Status: r.Status,
			CDate:  r.CDate,
		}
	}
	return views, nil
}
