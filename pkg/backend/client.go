package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"docrag-be/pkg/filesearch"
)

const DefaultTimeout = 30 * time.Second

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

type authTokenKey struct{}

// WithAuthToken attaches the caller's bearer token to ctx so every backend call
// made with it is authorised as that user.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

func AuthToken(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey{}).(string)
	return token
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ListChatSessions(ctx context.Context, offset, limit int) ([]ChatSession, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var sessions []ChatSession
	if err := c.do(ctx, http.MethodGet, "/api/v1/chat/sessions?"+q.Encode(), &sessions); err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	if sessions == nil {
		sessions = []ChatSession{}
	}
	return sessions, nil
}

func (c *Client) GetSessionMessages(ctx context.Context, sessionID string) ([]Message, error) {
	var messages []Message
	if err := c.do(ctx, http.MethodGet, "/api/v1/chat/sessions/"+url.PathEscape(sessionID)+"/messages", &messages); err != nil {
		return nil, fmt.Errorf("get messages of session %s: %w", sessionID, err)
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

func (c *Client) DeleteChatSession(ctx context.Context, sessionID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/chat/sessions/"+url.PathEscape(sessionID), nil); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

func (c *Client) ListStores(ctx context.Context) ([]filesearch.Store, error) {
	var records []StoreRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/stores/", &records); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	stores := make([]filesearch.Store, 0, len(records))
	for _, r := range records {
		stores = append(stores, r.ToStore())
	}
	return stores, nil
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token := AuthToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{StatusCode: res.StatusCode, Body: string(body)}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
