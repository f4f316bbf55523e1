package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/middleware"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/service"
	"github.com/strideworks/stride/internal/usecase"
)

// Signaler fans creation events out to realtime subscribers. Satisfied by
// service.SignalService.
type Signaler interface {
	Publish(ctx context.Context, event stride.Event) error
	Realtime(ctx context.Context, output chan<- stride.Event)
}

// Handler wires the concepts together into HTTP endpoints. All cross-concept
// logic (visibility resolution, cascade unlinks, competition fan-out) lives
// here; the concepts themselves stay mutually unaware.
type Handler struct {
	posting    *usecase.PostingUsecase
	commenting *usecase.CommentingUsecase
	tracking   *usecase.TrackingUsecase
	competing  *usecase.CompetingUsecase
	joining    *usecase.JoiningUsecase
	friending  *usecase.FriendingUsecase
	linking    *usecase.LinkingUsecase
	resolver   *usecase.VisibilityResolver
	directory  *service.DirectoryService
	signal     Signaler
	pres       *presenter.Presenter
}

func NewHandler(
	posting *usecase.PostingUsecase,
	commenting *usecase.CommentingUsecase,
	tracking *usecase.TrackingUsecase,
	competing *usecase.CompetingUsecase,
	joining *usecase.JoiningUsecase,
	friending *usecase.FriendingUsecase,
	linking *usecase.LinkingUsecase,
	directory *service.DirectoryService,
	signal Signaler,
	pres *presenter.Presenter,
) *Handler {
	return &Handler{
		posting:    posting,
		commenting: commenting,
		tracking:   tracking,
		competing:  competing,
		joining:    joining,
		friending:  friending,
		linking:    linking,
		resolver:   usecase.NewVisibilityResolver(linking),
		directory:  directory,
		signal:     signal,
		pres:       pres,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealthz)

	e.GET("/posts", h.handleGetPosts)
	e.POST("/posts", h.handleCreatePost)
	e.PATCH("/posts/:id", h.handleUpdatePost)
	e.DELETE("/posts/:id", h.handleDeletePost)

	e.GET("/items/:itemId/comments", h.handleGetItemComments)
	e.POST("/items/:itemId/comments", h.handleCreateComment)
	e.PATCH("/comments/:id", h.handleUpdateComment)
	e.DELETE("/comments/:id", h.handleDeleteComment)

	e.GET("/data", h.handleGetData)
	e.POST("/data", h.handleLogData)
	e.DELETE("/data/:id", h.handleDeleteData)

	e.GET("/competitions", h.handleGetCompetitions)
	e.POST("/competitions", h.handleCreateCompetition)
	e.PATCH("/competitions/:competition", h.handleUpdateCompetition)
	e.DELETE("/competitions/:competition", h.handleDeleteCompetition)
	e.GET("/competitions/:competition/users", h.handleGetCompetitionMembers)
	e.POST("/competitions/:competition/users", h.handleJoinCompetition)
	e.DELETE("/competitions/:competition/users", h.handleLeaveCompetition)
	e.GET("/competitions/:competition/scores", h.handleGetCompetitionScores)

	e.GET("/friends", h.handleGetFriends)
	e.DELETE("/friends/:friend", h.handleRemoveFriend)
	e.GET("/friend/requests", h.handleGetFriendRequests)
	e.POST("/friend/requests/:to", h.handleSendFriendRequest)
	e.DELETE("/friend/requests/:to", h.handleRemoveFriendRequest)
	e.PUT("/friend/accept/:from", h.handleAcceptFriendRequest)
	e.PUT("/friend/reject/:from", h.handleRejectFriendRequest)

	e.GET("/links", h.handleGetUserItemLink)
	h.registerLinkRoutes(e)

	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleHealthz(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func domainID(s string) domain.ID {
	return domain.ID(s)
}

// viewer returns the authenticated viewer id, zero when anonymous.
func (h *Handler) viewer(c echo.Context) domain.ID {
	return middleware.ViewerFromContext(c.Request().Context())
}

// requireViewer rejects anonymous requests.
func (h *Handler) requireViewer(c echo.Context) (domain.ID, error) {
	viewer := h.viewer(c)
	if viewer.IsZero() {
		return "", domain.ErrUnauthenticated
	}
	return viewer, nil
}

func (h *Handler) publish(ctx context.Context, kind string, id domain.ID) {
	event := stride.Event{Kind: kind, ID: id.String(), Timestamp: time.Now().UTC()}
	if err := h.signal.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish feed event",
			slog.String("error", err.Error()),
			slog.String("module", "rest"),
		)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan stride.Event)
	go h.signal.Realtime(ctx, output)

	quit := make(chan struct{})

	go func() {
		for {
			// Clients only send heartbeats; reads exist to notice the close.
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				close(quit)
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
