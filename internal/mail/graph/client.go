// Package graph is a minimal Microsoft Graph REST client covering the
// operations the tracker needs: inbox listing, exact-name drive lookup, and
// drive item content transfer. It speaks raw REST; credential acquisition is
// the identity provider's job, surfaced here only as a TokenStore.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reportledger/internal/mail"
	"reportledger/pkg/domain"
)

// DefaultBaseURL is the Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// DefaultMaxResponseSize bounds how much of a response body the client will
// buffer. Exceeding it is an error, never a silent truncation: a clipped
// ledger download would decode as corrupt and trigger the
// recreate-from-template path downstream.
const DefaultMaxResponseSize = 64 << 20

// StatusError reports a non-2xx Graph response. The operation that hit it
// aborts; nothing is partially committed after a failed fetch.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graph request failed: %d %s", e.Status, e.Body)
}

// Client calls the Graph API with bearer credentials from a TokenStore.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     mail.TokenStore
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithBaseURL points the client at a non-default endpoint.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

// WithMaxResponseSize overrides the response body bound, mainly for tests.
func WithMaxResponseSize(n int64) Option { return func(c *Client) { c.maxBody = n } }

// NewClient constructs a Graph client.
func NewClient(tokens mail.TokenStore, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		tokens:     tokens,
		maxBody:    DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.doURL(ctx, method, path, u, body)
}

// doURL issues a request against a fully formed URL; paged listings hand the
// server's @odata.nextLink straight back in. path only labels errors.
func (c *Client) doURL(ctx context.Context, method, path, u string, body io.Reader) ([]byte, error) {
	token, ok := c.tokens.Get(ctx)
	if !ok {
		return nil, fmt.Errorf("no bearer credential available")
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			// stale credential; drop it so the next operation renews
			c.tokens.Clear(ctx)
		}
		if int64(len(data)) > c.maxBody {
			data = data[:c.maxBody]
		}
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("graph %s %s: response exceeds %d bytes", method, path, c.maxBody)
	}
	return data, nil
}

// Graph wire shapes, limited to the selected fields.
type wireMessage struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Body    struct {
		Content string `json:"content"`
	} `json:"body"`
	ReceivedDateTime string `json:"receivedDateTime"`
	From             struct {
		EmailAddress struct {
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
	HasAttachments bool `json:"hasAttachments"`
}

type wireList[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

const messageSelect = "id,subject,body,receivedDateTime,from,hasAttachments"

// ListInbox lists up to limit messages from the well-known inbox folder.
func (c *Client) ListInbox(ctx context.Context, limit int) ([]domain.Message, error) {
	return c.listMessages(ctx, "/me/mailFolders/inbox/messages", limit)
}

// ListFolder resolves a folder by display name (case-insensitive exact
// match) and lists its messages. Folder listings page server-side, so every
// page is walked before the name is reported missing.
func (c *Client) ListFolder(ctx context.Context, displayName string, limit int) ([]domain.Message, error) {
	q := url.Values{}
	q.Set("$top", "100")
	next := c.baseURL + "/me/mailFolders?" + q.Encode()
	for next != "" {
		data, err := c.doURL(ctx, http.MethodGet, "/me/mailFolders", next, nil)
		if err != nil {
			return nil, err
		}
		var folders wireList[struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		}]
		if err := json.Unmarshal(data, &folders); err != nil {
			return nil, fmt.Errorf("decode folders: %w", err)
		}
		for _, f := range folders.Value {
			if strings.EqualFold(f.DisplayName, displayName) {
				return c.listMessages(ctx, "/me/mailFolders/"+url.PathEscape(f.ID)+"/messages", limit)
			}
		}
		next = folders.NextLink
	}
	return nil, fmt.Errorf("mail folder %q not found", displayName)
}

func (c *Client) listMessages(ctx context.Context, path string, limit int) ([]domain.Message, error) {
	q := url.Values{}
	q.Set("$top", fmt.Sprint(limit))
	q.Set("$select", messageSelect)
	data, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	var list wireList[wireMessage]
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	out := make([]domain.Message, 0, len(list.Value))
	for _, m := range list.Value {
		received, _ := time.Parse(time.RFC3339, m.ReceivedDateTime)
		out = append(out, domain.Message{
			ID:            m.ID,
			Subject:       m.Subject,
			Body:          m.Body.Content,
			From:          m.From.EmailAddress.Address,
			ReceivedAt:    received,
			HasAttachment: m.HasAttachments,
		})
	}
	return out, nil
}

// Me returns the signed-in user's address, preferring mail over UPN.
func (c *Client) Me(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/me", nil, nil)
	if err != nil {
		return "", err
	}
	var me struct {
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := json.Unmarshal(data, &me); err != nil {
		return "", fmt.Errorf("decode profile: %w", err)
	}
	if me.Mail != "" {
		return me.Mail, nil
	}
	return me.UserPrincipalName, nil
}

// FindByName looks up a drive-root child by exact name, case-insensitively.
// Never fuzzy: anything other than an exact match reports not-found.
func (c *Client) FindByName(ctx context.Context, name string) (string, bool, error) {
	data, err := c.do(ctx, http.MethodGet, "/me/drive/root/children", nil, nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	var items wireList[struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}]
	if err := json.Unmarshal(data, &items); err != nil {
		return "", false, fmt.Errorf("decode children: %w", err)
	}
	for _, it := range items.Value {
		if strings.EqualFold(it.Name, name) {
			return it.ID, true, nil
		}
	}
	return "", false, nil
}

// Read downloads a drive item's content.
func (c *Client) Read(ctx context.Context, handle string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/me/drive/items/"+url.PathEscape(handle)+"/content", nil, nil)
}

// Write replaces a drive item's content.
func (c *Client) Write(ctx context.Context, handle string, data []byte) error {
	_, err := c.do(ctx, http.MethodPut, "/me/drive/items/"+url.PathEscape(handle)+"/content", nil, bytes.NewReader(data))
	return err
}

// Create uploads a new file into the drive root and returns its item id.
func (c *Client) Create(ctx context.Context, name string, data []byte) (string, error) {
	out, err := c.do(ctx, http.MethodPut, "/me/drive/root:/"+url.PathEscape(name)+":/content", nil, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(out, &item); err != nil {
		return "", fmt.Errorf("decode created item: %w", err)
	}
	return item.ID, nil
}

// WebURL returns the browser link for a drive item.
func (c *Client) WebURL(ctx context.Context, handle string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/me/drive/items/"+url.PathEscape(handle), nil, nil)
	if err != nil {
		return "", err
	}
	var item struct {
		WebURL string `json:"webUrl"`
	}
	if err := json.Unmarshal(data, &item); err != nil {
		return "", fmt.Errorf("decode item: %w", err)
	}
	return item.WebURL, nil
}
