// Package client is a small Go SDK for the stride HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/strideworks/stride"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string
	token   string
}

// New creates a client for the given server base URL, e.g.
// "https://stride.example.com". An empty token makes anonymous requests;
// listings still work but owner fields come back redacted.
func New(baseURL, token string) *Client {
	return &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		baseURL: baseURL,
		token:   token,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, response any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

// GetPosts lists posts, optionally filtered to one author's linked posts.
// Results depend on who is asking, so they are never cached.
func (c *Client) GetPosts(ctx context.Context, author string) ([]stride.Post, error) {
	path := "/posts"
	if author != "" {
		path += "?author=" + url.QueryEscape(author)
	}
	var posts []stride.Post
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, request stride.CreatePostRequest) (stride.Post, error) {
	var response struct {
		Post stride.Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts", request, &response); err != nil {
		return stride.Post{}, err
	}
	return response.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetComments(ctx context.Context, itemID string) ([]stride.Comment, error) {
	var comments []stride.Comment
	path := "/items/" + url.PathEscape(itemID) + "/comments"
	if err := c.do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, itemID string, request stride.CreateCommentRequest) (stride.Comment, error) {
	var response struct {
		Comment stride.Comment `json:"comment"`
	}
	path := "/items/" + url.PathEscape(itemID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, request, &response); err != nil {
		return stride.Comment{}, err
	}
	return response.Comment, nil
}

func (c *Client) GetData(ctx context.Context, username string) ([]stride.Datum, error) {
	path := "/data"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}
	var data []stride.Datum
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) LogDatum(ctx context.Context, request stride.LogDatumRequest) (stride.Datum, error) {
	var response struct {
		Datum stride.Datum `json:"datum"`
	}
	if err := c.do(ctx, http.MethodPost, "/data", request, &response); err != nil {
		return stride.Datum{}, err
	}
	return response.Datum, nil
}

// GetCompetitions lists active competitions, optionally those a user joined.
func (c *Client) GetCompetitions(ctx context.Context, username string) ([]stride.Competition, error) {
	path := "/competitions"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}
	var competitions []stride.Competition
	if err := c.do(ctx, http.MethodGet, path, nil, &competitions); err != nil {
		return nil, err
	}
	return competitions, nil
}

// GetScores fetches a competition leaderboard. Boards change slowly, so a
// short cache absorbs repeated polling.
func (c *Client) GetScores(ctx context.Context, competitionID string) ([]stride.ScoreEntry, error) {
	cacheKey := "scores:" + competitionID
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]stride.ScoreEntry), nil
	}

	var entries []stride.ScoreEntry
	path := "/competitions/" + url.PathEscape(competitionID) + "/scores"
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, entries, time.Minute)
	return entries, nil
}

func (c *Client) JoinCompetition(ctx context.Context, name string, isLinked bool) error {
	path := "/competitions/" + url.PathEscape(name) + "/users"
	return c.do(ctx, http.MethodPost, path, stride.JoinCompetitionRequest{IsLinked: isLinked}, nil)
}

func (c *Client) LeaveCompetition(ctx context.Context, name string) error {
	path := "/competitions/" + url.PathEscape(name) + "/users"
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) GetFriends(ctx context.Context) ([]string, error) {
	var friends []string
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (c *Client) SendFriendRequest(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/friend/requests/"+url.PathEscape(username), nil, nil)
}

func (c *Client) AcceptFriendRequest(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPut, "/friend/accept/"+url.PathEscape(username), nil, nil)
}

// GetLink fetches the caller's link on an item, nil when not linked.
func (c *Client) GetLink(ctx context.Context, itemID string) (*stride.Link, error) {
	var link *stride.Link
	path := "/links?itemId=" + url.QueryEscape(itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &link); err != nil {
		return nil, err
	}
	return link, nil
}

// CreateLink links one of the caller's items. kind is the concept segment:
// posts, comments, data or competitions.
func (c *Client) CreateLink(ctx context.Context, kind, itemID string) (stride.Link, error) {
	var link stride.Link
	path := "/links/" + url.PathEscape(kind)
	if err := c.do(ctx, http.MethodPost, path, stride.CreateLinkRequest{ItemID: itemID}, &link); err != nil {
		return stride.Link{}, err
	}
	return link, nil
}

func (c *Client) DeleteLink(ctx context.Context, kind, linkID string) error {
	path := "/links/" + url.PathEscape(kind) + "/" + url.PathEscape(linkID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
