package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/strideworks/stride"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/service"
	"github.com/strideworks/stride/internal/usecase"
)

// --- mocks ---

type memPostRepo struct {
	posts []domain.Post
}

func (m *memPostRepo) Create(ctx context.Context, post domain.Post) error {
	m.posts = append(m.posts, post)
	return nil
}

func (m *memPostRepo) Get(ctx context.Context, id domain.ID) (domain.Post, error) {
	for _, post := range m.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return domain.Post{}, domain.NotFoundError{Resource: "post"}
}

func (m *memPostRepo) GetAll(ctx context.Context) ([]domain.Post, error) {
	return append([]domain.Post{}, m.posts...), nil
}

func (m *memPostRepo) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Post, error) {
	var out []domain.Post
	for _, post := range m.posts {
		if post.Author == author {
			out = append(out, post)
		}
	}
	return out, nil
}

func (m *memPostRepo) Update(ctx context.Context, post domain.Post) error {
	for i := range m.posts {
		if m.posts[i].ID == post.ID {
			m.posts[i] = post
			return nil
		}
	}
	return domain.NotFoundError{Resource: "post"}
}

func (m *memPostRepo) Delete(ctx context.Context, id domain.ID) error {
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "post"}
}

type memCommentRepo struct {
	comments []domain.Comment
}

func (m *memCommentRepo) Create(ctx context.Context, comment domain.Comment) error {
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memCommentRepo) Get(ctx context.Context, id domain.ID) (domain.Comment, error) {
	for _, comment := range m.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return domain.Comment{}, domain.NotFoundError{Resource: "comment"}
}

func (m *memCommentRepo) GetAll(ctx context.Context) ([]domain.Comment, error) {
	return append([]domain.Comment{}, m.comments...), nil
}

func (m *memCommentRepo) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range m.comments {
		if comment.Author == author {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (m *memCommentRepo) GetByItem(ctx context.Context, item domain.ID) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range m.comments {
		if comment.Item == item {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (m *memCommentRepo) Update(ctx context.Context, comment domain.Comment) error {
	for i := range m.comments {
		if m.comments[i].ID == comment.ID {
			m.comments[i] = comment
			return nil
		}
	}
	return domain.NotFoundError{Resource: "comment"}
}

func (m *memCommentRepo) Delete(ctx context.Context, id domain.ID) error {
	for i := range m.comments {
		if m.comments[i].ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "comment"}
}

type memDatumRepo struct {
	data []domain.Datum
}

func (m *memDatumRepo) Create(ctx context.Context, datum domain.Datum) error {
	m.data = append(m.data, datum)
	return nil
}

func (m *memDatumRepo) Get(ctx context.Context, id domain.ID) (domain.Datum, error) {
	for _, datum := range m.data {
		if datum.ID == id {
			return datum, nil
		}
	}
	return domain.Datum{}, domain.NotFoundError{Resource: "datum"}
}

func (m *memDatumRepo) Query(ctx context.Context, filter domain.DatumFilter) ([]domain.Datum, error) {
	var out []domain.Datum
	for _, datum := range m.data {
		if !filter.User.IsZero() && datum.User != filter.User {
			continue
		}
		out = append(out, datum)
	}
	return out, nil
}

func (m *memDatumRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Datum, error) {
	var out []domain.Datum
	for _, id := range ids {
		for _, datum := range m.data {
			if datum.ID == id {
				out = append(out, datum)
			}
		}
	}
	return out, nil
}

func (m *memDatumRepo) GetByUser(ctx context.Context, user domain.ID) ([]domain.Datum, error) {
	return m.Query(ctx, domain.DatumFilter{User: user})
}

func (m *memDatumRepo) Delete(ctx context.Context, id domain.ID) error {
	for i := range m.data {
		if m.data[i].ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "datum"}
}

type memCompetitionRepo struct {
	competitions []domain.Competition
}

func (m *memCompetitionRepo) Create(ctx context.Context, competition domain.Competition) error {
	m.competitions = append(m.competitions, competition)
	return nil
}

func (m *memCompetitionRepo) Get(ctx context.Context, id domain.ID) (domain.Competition, error) {
	for _, competition := range m.competitions {
		if competition.ID == id {
			return competition, nil
		}
	}
	return domain.Competition{}, domain.NotFoundError{Resource: "competition"}
}

func (m *memCompetitionRepo) GetByName(ctx context.Context, name string) (domain.Competition, error) {
	for _, competition := range m.competitions {
		if competition.Name == name {
			return competition, nil
		}
	}
	return domain.Competition{}, domain.NotFoundError{Resource: "competition"}
}

func (m *memCompetitionRepo) GetActive(ctx context.Context) ([]domain.Competition, error) {
	var out []domain.Competition
	for _, competition := range m.competitions {
		if competition.EndDate.After(time.Now()) {
			out = append(out, competition)
		}
	}
	return out, nil
}

func (m *memCompetitionRepo) GetByOwner(ctx context.Context, owner domain.ID) ([]domain.Competition, error) {
	var out []domain.Competition
	for _, competition := range m.competitions {
		if competition.Owner == owner {
			out = append(out, competition)
		}
	}
	return out, nil
}

func (m *memCompetitionRepo) GetAll(ctx context.Context) ([]domain.Competition, error) {
	return append([]domain.Competition{}, m.competitions...), nil
}

func (m *memCompetitionRepo) Update(ctx context.Context, competition domain.Competition) error {
	for i := range m.competitions {
		if m.competitions[i].ID == competition.ID {
			m.competitions[i] = competition
			return nil
		}
	}
	return domain.NotFoundError{Resource: "competition"}
}

func (m *memCompetitionRepo) AddDatum(ctx context.Context, id, datum domain.ID) error {
	for i := range m.competitions {
		if m.competitions[i].ID == id {
			m.competitions[i].Data = append(m.competitions[i].Data, datum)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "competition"}
}

func (m *memCompetitionRepo) Delete(ctx context.Context, id domain.ID) error {
	for i := range m.competitions {
		if m.competitions[i].ID == id {
			m.competitions = append(m.competitions[:i], m.competitions[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "competition"}
}

type memMembershipRepo struct {
	memberships []domain.Membership
}

func (m *memMembershipRepo) Create(ctx context.Context, membership domain.Membership) error {
	m.memberships = append(m.memberships, membership)
	return nil
}

func (m *memMembershipRepo) Exists(ctx context.Context, user, group domain.ID) (bool, error) {
	for _, membership := range m.memberships {
		if membership.User == user && membership.Group == group {
			return true, nil
		}
	}
	return false, nil
}

func (m *memMembershipRepo) GetByGroup(ctx context.Context, group domain.ID) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, membership := range m.memberships {
		if membership.Group == group {
			out = append(out, membership)
		}
	}
	return out, nil
}

func (m *memMembershipRepo) GetByUser(ctx context.Context, user domain.ID) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, membership := range m.memberships {
		if membership.User == user {
			out = append(out, membership)
		}
	}
	return out, nil
}

func (m *memMembershipRepo) Delete(ctx context.Context, user, group domain.ID) error {
	for i := range m.memberships {
		if m.memberships[i].User == user && m.memberships[i].Group == group {
			m.memberships = append(m.memberships[:i], m.memberships[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "membership"}
}

type memFriendRepo struct {
	requests    []domain.FriendRequest
	friendships []domain.Friendship
}

func (m *memFriendRepo) CreateRequest(ctx context.Context, request domain.FriendRequest) error {
	m.requests = append(m.requests, request)
	return nil
}

func (m *memFriendRepo) GetPendingRequest(ctx context.Context, from, to domain.ID) (domain.FriendRequest, error) {
	for _, request := range m.requests {
		if request.From == from && request.To == to && request.Status == domain.FriendRequestPending {
			return request, nil
		}
	}
	return domain.FriendRequest{}, domain.NotFoundError{Resource: "friend request"}
}

func (m *memFriendRepo) UpdateRequestStatus(ctx context.Context, from, to domain.ID, status string) error {
	for i := range m.requests {
		if m.requests[i].From == from && m.requests[i].To == to && m.requests[i].Status == domain.FriendRequestPending {
			m.requests[i].Status = status
			return nil
		}
	}
	return domain.NotFoundError{Resource: "friend request"}
}

func (m *memFriendRepo) DeletePendingRequest(ctx context.Context, from, to domain.ID) error {
	for i := range m.requests {
		if m.requests[i].From == from && m.requests[i].To == to && m.requests[i].Status == domain.FriendRequestPending {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "friend request"}
}

func (m *memFriendRepo) GetRequestsInvolving(ctx context.Context, user domain.ID) ([]domain.FriendRequest, error) {
	var out []domain.FriendRequest
	for _, request := range m.requests {
		if request.From == user || request.To == user {
			out = append(out, request)
		}
	}
	return out, nil
}

func (m *memFriendRepo) CreateFriendship(ctx context.Context, friendship domain.Friendship) error {
	m.friendships = append(m.friendships, friendship)
	return nil
}

func (m *memFriendRepo) AreFriends(ctx context.Context, user1, user2 domain.ID) (bool, error) {
	for _, friendship := range m.friendships {
		if (friendship.User1 == user1 && friendship.User2 == user2) ||
			(friendship.User1 == user2 && friendship.User2 == user1) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFriendRepo) DeleteFriendship(ctx context.Context, user1, user2 domain.ID) error {
	for i := range m.friendships {
		if (m.friendships[i].User1 == user1 && m.friendships[i].User2 == user2) ||
			(m.friendships[i].User1 == user2 && m.friendships[i].User2 == user1) {
			m.friendships = append(m.friendships[:i], m.friendships[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "friendship"}
}

func (m *memFriendRepo) GetFriends(ctx context.Context, user domain.ID) ([]domain.ID, error) {
	var out []domain.ID
	for _, friendship := range m.friendships {
		if friendship.User1 == user {
			out = append(out, friendship.User2)
		} else if friendship.User2 == user {
			out = append(out, friendship.User1)
		}
	}
	return out, nil
}

type memLinkStore struct {
	links []domain.Link
}

func (m *memLinkStore) Create(ctx context.Context, link domain.Link) error {
	for _, existing := range m.links {
		if existing.User == link.User && existing.Item == link.Item {
			return domain.ErrConflict
		}
	}
	m.links = append(m.links, link)
	return nil
}

func (m *memLinkStore) Get(ctx context.Context, id domain.ID) (domain.Link, error) {
	for _, link := range m.links {
		if link.ID == id {
			return link, nil
		}
	}
	return domain.Link{}, domain.NotFoundError{Resource: "link"}
}

func (m *memLinkStore) GetByUserItem(ctx context.Context, user, item domain.ID) (domain.Link, error) {
	for _, link := range m.links {
		if link.User == user && link.Item == item {
			return link, nil
		}
	}
	return domain.Link{}, domain.NotFoundError{Resource: "link"}
}

func (m *memLinkStore) Exists(ctx context.Context, user, item domain.ID) (bool, error) {
	_, err := m.GetByUserItem(ctx, user, item)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memLinkStore) GetAll(ctx context.Context) ([]domain.Link, error) {
	return append([]domain.Link{}, m.links...), nil
}

func (m *memLinkStore) GetByUser(ctx context.Context, user domain.ID) ([]domain.Link, error) {
	var out []domain.Link
	for _, link := range m.links {
		if link.User == user {
			out = append(out, link)
		}
	}
	return out, nil
}

func (m *memLinkStore) Delete(ctx context.Context, id domain.ID) error {
	for i := range m.links {
		if m.links[i].ID == id {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "link"}
}

func (m *memLinkStore) DeleteByUserItem(ctx context.Context, user, item domain.ID) error {
	for i := range m.links {
		if m.links[i].User == user && m.links[i].Item == item {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	// Matches LinkRepository.DeleteByUserItem: deleting zero rows is not an
	// error.
	return nil
}

type memIdentityRepo struct {
	users []domain.User
}

func (m *memIdentityRepo) GetUser(ctx context.Context, id domain.ID) (domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *memIdentityRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *memIdentityRepo) GetNames(ctx context.Context, ids []domain.ID) ([]string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		for _, user := range m.users {
			if user.ID == id {
				out[i] = user.Username
			}
		}
	}
	return out, nil
}

type nopSignal struct {
	published []stride.Event
}

func (m *nopSignal) Publish(ctx context.Context, event stride.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *nopSignal) Realtime(ctx context.Context, output chan<- stride.Event) {
	<-ctx.Done()
}

// --- fixture ---

const (
	alice = domain.ID("00000000-0000-0000-0000-00000000000a")
	bob   = domain.ID("00000000-0000-0000-0000-00000000000b")
)

type fixture struct {
	e           *echo.Echo
	posts       *memPostRepo
	comments    *memCommentRepo
	data        *memDatumRepo
	competition *memCompetitionRepo
	memberships *memMembershipRepo
	links       *memLinkStore
	signal      *nopSignal
}

// viewerHeader injects the viewer directly, standing in for the session
// middleware that cmd wires up.
const viewerHeader = "X-Viewer"

func newFixture() *fixture {
	f := &fixture{
		posts:       &memPostRepo{},
		comments:    &memCommentRepo{},
		data:        &memDatumRepo{},
		competition: &memCompetitionRepo{},
		memberships: &memMembershipRepo{},
		links:       &memLinkStore{},
		signal:      &nopSignal{},
	}

	identity := &memIdentityRepo{users: []domain.User{
		{ID: alice, Username: "alice"},
		{ID: bob, Username: "bob"},
	}}
	directory := service.NewDirectoryService(identity)

	tracking := usecase.NewTrackingUsecase(f.data)
	pres := presenter.New(directory, tracking)

	h := NewHandler(
		usecase.NewPostingUsecase(f.posts),
		usecase.NewCommentingUsecase(f.comments),
		tracking,
		usecase.NewCompetingUsecase(f.competition),
		usecase.NewJoiningUsecase(f.memberships),
		usecase.NewFriendingUsecase(&memFriendRepo{}),
		usecase.NewLinkingUsecase(f.links),
		directory,
		f.signal,
		pres,
	)

	f.e = echo.New()
	f.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if viewer := c.Request().Header.Get(viewerHeader); viewer != "" {
				ctx := context.WithValue(c.Request().Context(), domain.ViewerCtxKey, domain.ID(viewer))
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	})
	h.RegisterRoutes(f.e)
	return f
}

func (f *fixture) request(t *testing.T, method, path string, viewer domain.ID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if !viewer.IsZero() {
		req.Header.Set(viewerHeader, viewer.String())
	}
	res := httptest.NewRecorder()
	f.e.ServeHTTP(res, req)
	return res
}

func decodeBody[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, res.Body.String())
	}
	return out
}

// --- tests ---

func TestGetPostsRedactsUnlinkedAuthors(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{
		{ID: "p1", Author: alice, Content: "hidden run"},
		{ID: "p2", Author: alice, Content: "public run"},
	}
	f.links.links = []domain.Link{{ID: "l1", User: alice, Item: "p2"}}

	res := f.request(t, http.MethodGet, "/posts", "", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	posts := decodeBody[[]stride.Post](t, res)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts got %d", len(posts))
	}
	if posts[0].ID != "p1" || posts[1].ID != "p2" {
		t.Fatalf("result order changed: %v %v", posts[0].ID, posts[1].ID)
	}
	if posts[0].Author != "" {
		t.Errorf("unlinked post leaked author %q", posts[0].Author)
	}
	if posts[1].Author != "alice" {
		t.Errorf("linked post lost author, got %q", posts[1].Author)
	}
}

func TestGetPostsOwnerSeesOwnAuthorship(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{
		{ID: "p1", Author: alice, Content: "hidden run"},
	}

	res := f.request(t, http.MethodGet, "/posts", alice, nil)
	posts := decodeBody[[]stride.Post](t, res)
	if len(posts) != 1 || posts[0].Author != "alice" {
		t.Fatalf("owner should see own authorship, got %+v", posts)
	}

	res = f.request(t, http.MethodGet, "/posts", bob, nil)
	posts = decodeBody[[]stride.Post](t, res)
	if posts[0].Author != "" {
		t.Fatalf("other viewer should see redacted post, got %+v", posts[0])
	}
}

func TestGetPostsAuthorFilterDropsUnlinked(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{
		{ID: "p1", Author: alice, Content: "hidden run"},
		{ID: "p2", Author: alice, Content: "public run"},
	}
	f.links.links = []domain.Link{{ID: "l1", User: alice, Item: "p2"}}

	// Other viewers only get the linked item, fully attributed.
	res := f.request(t, http.MethodGet, "/posts?author=alice", bob, nil)
	posts := decodeBody[[]stride.Post](t, res)
	if len(posts) != 1 || posts[0].ID != "p2" {
		t.Fatalf("expected only linked post, got %+v", posts)
	}
	if posts[0].Author != "alice" {
		t.Fatalf("filtered listing must attribute, got %q", posts[0].Author)
	}

	// The author gets everything.
	res = f.request(t, http.MethodGet, "/posts?author=alice", alice, nil)
	posts = decodeBody[[]stride.Post](t, res)
	if len(posts) != 2 {
		t.Fatalf("author should see all own posts, got %d", len(posts))
	}
}

func TestCreatePostRequiresViewer(t *testing.T) {
	f := newFixture()
	res := f.request(t, http.MethodPost, "/posts", "", stride.CreatePostRequest{Content: "hi"})
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.Code)
	}
}

func TestCreatePostWithLink(t *testing.T) {
	f := newFixture()
	res := f.request(t, http.MethodPost, "/posts", alice, stride.CreatePostRequest{
		Content:  "first run",
		IsLinked: true,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.posts.posts) != 1 {
		t.Fatalf("expected 1 post got %d", len(f.posts.posts))
	}
	if len(f.links.links) != 1 || f.links.links[0].Item != f.posts.posts[0].ID {
		t.Fatalf("expected link on the new post, got %+v", f.links.links)
	}
	if len(f.signal.published) != 1 || f.signal.published[0].Kind != stride.EventPost {
		t.Fatalf("expected one post event, got %+v", f.signal.published)
	}
}

func TestDeletePostRemovesLink(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{{ID: "p1", Author: alice}}
	f.links.links = []domain.Link{{ID: "l1", User: alice, Item: "p1"}}

	res := f.request(t, http.MethodDelete, "/posts/p1", alice, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.posts.posts) != 0 {
		t.Fatalf("post not deleted")
	}
	if len(f.links.links) != 0 {
		t.Fatalf("dangling link survived delete: %+v", f.links.links)
	}
}

func TestDeletePostRejectsNonAuthor(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{{ID: "p1", Author: alice}}

	res := f.request(t, http.MethodDelete, "/posts/p1", bob, nil)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.posts.posts) != 1 {
		t.Fatalf("post deleted by non-author")
	}
}

func TestDuplicateLinkConflicts(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{{ID: "p1", Author: alice}}

	res := f.request(t, http.MethodPost, "/links/posts", alice, stride.CreateLinkRequest{ItemID: "p1"})
	if res.Code != http.StatusOK {
		t.Fatalf("first link: expected 200 got %d: %s", res.Code, res.Body.String())
	}
	res = f.request(t, http.MethodPost, "/links/posts", alice, stride.CreateLinkRequest{ItemID: "p1"})
	if res.Code != http.StatusConflict {
		t.Fatalf("second link: expected 409 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.links.links) != 1 {
		t.Fatalf("expected exactly one link, got %d", len(f.links.links))
	}
}

func TestCreateLinkRejectsForeignItem(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{{ID: "p1", Author: alice}}

	res := f.request(t, http.MethodPost, "/links/posts", bob, stride.CreateLinkRequest{ItemID: "p1"})
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", res.Code, res.Body.String())
	}
}

func TestLogDataFansOutToCompetitions(t *testing.T) {
	f := newFixture()
	f.competition.competitions = []domain.Competition{
		{ID: "c1", Name: "steps", Owner: bob, EndDate: time.Now().Add(24 * time.Hour)},
	}
	f.memberships.memberships = []domain.Membership{
		{ID: "m1", User: alice, Group: "c1"},
	}

	res := f.request(t, http.MethodPost, "/data", alice, stride.LogDatumRequest{
		Date:  time.Now(),
		Score: 9000,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.data.data) != 1 {
		t.Fatalf("expected 1 datum got %d", len(f.data.data))
	}
	if len(f.competition.competitions[0].Data) != 1 {
		t.Fatalf("datum not fanned out to joined competition")
	}
}

func TestLogDataSkipsEndedCompetitions(t *testing.T) {
	f := newFixture()
	f.competition.competitions = []domain.Competition{
		{ID: "c1", Name: "steps", Owner: bob, EndDate: time.Now().Add(-time.Hour)},
	}
	f.memberships.memberships = []domain.Membership{
		{ID: "m1", User: alice, Group: "c1"},
	}

	res := f.request(t, http.MethodPost, "/data", alice, stride.LogDatumRequest{
		Date:  time.Now(),
		Score: 100,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.competition.competitions[0].Data) != 0 {
		t.Fatalf("ended competition received data")
	}
}

func TestGetCompetitionMembersHidesUnlinked(t *testing.T) {
	f := newFixture()
	f.competition.competitions = []domain.Competition{
		{ID: "c1", Name: "steps", Owner: alice, EndDate: time.Now().Add(24 * time.Hour)},
	}
	f.memberships.memberships = []domain.Membership{
		{ID: "m1", User: alice, Group: "c1"},
		{ID: "m2", User: bob, Group: "c1"},
	}
	f.links.links = []domain.Link{{ID: "l1", User: alice, Item: "c1"}}

	// Anonymous viewer only sees the member who linked the competition.
	res := f.request(t, http.MethodGet, "/competitions/steps/users", "", nil)
	members := decodeBody[[]stride.Membership](t, res)
	if len(members) != 1 || members[0].User != "alice" {
		t.Fatalf("expected only linked member, got %+v", members)
	}

	// Members always see themselves.
	res = f.request(t, http.MethodGet, "/competitions/steps/users", bob, nil)
	members = decodeBody[[]stride.Membership](t, res)
	if len(members) != 2 {
		t.Fatalf("member should see own membership, got %+v", members)
	}
}

func TestDeleteCompetitionCascades(t *testing.T) {
	f := newFixture()
	f.competition.competitions = []domain.Competition{
		{ID: "c1", Name: "steps", Owner: alice, EndDate: time.Now().Add(24 * time.Hour)},
	}
	f.memberships.memberships = []domain.Membership{
		{ID: "m1", User: alice, Group: "c1"},
		{ID: "m2", User: bob, Group: "c1"},
	}
	f.links.links = []domain.Link{
		{ID: "l1", User: alice, Item: "c1"},
		{ID: "l2", User: bob, Item: "c1"},
	}

	res := f.request(t, http.MethodDelete, "/competitions/steps", alice, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if len(f.competition.competitions) != 0 {
		t.Fatalf("competition not deleted")
	}
	if len(f.memberships.memberships) != 0 {
		t.Fatalf("memberships survived delete: %+v", f.memberships.memberships)
	}
	if len(f.links.links) != 0 {
		t.Fatalf("links survived delete: %+v", f.links.links)
	}
}

func TestGetUserItemLink(t *testing.T) {
	f := newFixture()
	f.links.links = []domain.Link{{ID: "l1", User: alice, Item: "p1"}}

	res := f.request(t, http.MethodGet, "/links?itemId=p1", alice, nil)
	link := decodeBody[*stride.Link](t, res)
	if link == nil || link.ID != "l1" {
		t.Fatalf("expected link l1, got %+v", link)
	}

	res = f.request(t, http.MethodGet, "/links?itemId=p2", alice, nil)
	link = decodeBody[*stride.Link](t, res)
	if link != nil {
		t.Fatalf("expected null for unlinked item, got %+v", link)
	}
}

func TestListLinksFilteredByUsername(t *testing.T) {
	f := newFixture()
	f.posts.posts = []domain.Post{
		{ID: "p1", Author: alice},
		{ID: "p2", Author: bob},
	}
	f.links.links = []domain.Link{
		{ID: "l1", User: alice, Item: "p1"},
		{ID: "l2", User: bob, Item: "p2"},
	}

	res := f.request(t, http.MethodGet, "/links/posts?username=alice", "", nil)
	links := decodeBody[[]stride.Link](t, res)
	if len(links) != 1 || links[0].ID != "l1" {
		t.Fatalf("expected alice's post link only, got %+v", links)
	}

	res = f.request(t, http.MethodGet, "/links/posts", "", nil)
	links = decodeBody[[]stride.Link](t, res)
	if len(links) != 2 {
		t.Fatalf("expected both post links, got %+v", links)
	}
}

func TestItemCommentsVisibility(t *testing.T) {
	f := newFixture()
	f.comments.comments = []domain.Comment{
		{ID: "c1", Author: alice, Item: "p1", Content: "nice"},
		{ID: "c2", Author: bob, Item: "p1", Content: "thanks"},
	}
	f.links.links = []domain.Link{{ID: "l1", User: bob, Item: "c2"}}

	res := f.request(t, http.MethodGet, "/items/p1/comments", "", nil)
	comments := decodeBody[[]stride.Comment](t, res)
	if len(comments) != 2 {
		t.Fatalf("expected full thread, got %d", len(comments))
	}
	if comments[0].Author != "" {
		t.Errorf("unlinked comment leaked author %q", comments[0].Author)
	}
	if comments[1].Author != "bob" {
		t.Errorf("linked comment lost author, got %q", comments[1].Author)
	}

	res = f.request(t, http.MethodGet, "/items/p1/comments?author=alice", bob, nil)
	comments = decodeBody[[]stride.Comment](t, res)
	if len(comments) != 0 {
		t.Fatalf("unlinked author filter should be empty, got %+v", comments)
	}
}
