// Package remote implements the blob-by-path client for the hosted
// git-repository contents API used as the remote object store.
//
// The core only needs two operations: read a blob with its current
// revision marker, and write a blob optionally conditioned on the prior
// revision. Conditional writes are how concurrent pushes from another
// machine are detected instead of blindly overwritten.
//
// Calls are sequential and blocking with no built-in retries; a
// transient failure surfaces immediately and the caller decides whether
// to rerun the operation.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
)

// DefaultBaseURL is the hosted git API endpoint.
const DefaultBaseURL = "https://api.github.com"

const requestTimeout = 30 * time.Second

// Client talks to one remote repository.
type Client struct {
	httpClient *http.Client
	baseURL    string
	repository string
	branch     string
	token      string
	userAgent  string
}

// Config carries the settings needed to construct a Client.
type Config struct {
	// Repository is the "owner/name" repository path.
	Repository string

	// Branch is the target branch; empty uses the repository default.
	Branch string

	// Token is the access token sent as a bearer credential.
	Token string

	// BaseURL overrides the API endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// UserAgent identifies this installation in requests.
	UserAgent string
}

// New creates a client for the given remote repository.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "securedenv"
	}

	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		repository: cfg.Repository,
		branch:     cfg.Branch,
		token:      cfg.Token,
		userAgent:  userAgent,
	}
}

// Blob is a remote object: its bytes and the revision marker required for
// a conditional update.
type Blob struct {
	Content  []byte
	Revision string
}

type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// GetBlob fetches the object at path together with its current revision.
// Returns ErrRemoteNotFound if no object exists at that path.
func (c *Client) GetBlob(ctx context.Context, path string) (*Blob, error) {
	reqURL := c.contentsURL(path)
	if c.branch != "" {
		reqURL += "?ref=" + url.QueryEscape(c.branch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s from %s: %w", path, c.repository, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", serrors.ErrRemoteNotFound, path)
	default:
		return nil, fmt.Errorf("fetching %s from %s: %s", path, c.repository, readAPIError(resp))
	}

	var body contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", path, err)
	}

	// The API wraps base64 content across lines.
	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s: %w", path, err)
	}

	return &Blob{Content: content, Revision: body.SHA}, nil
}

// PutBlob writes the object at path. When expectedRevision is non-empty
// the write is conditional: a revision mismatch on the server side
// surfaces as ErrRemoteConflict. An empty expectedRevision creates the
// object and must only be used when no object exists yet.
func (c *Client) PutBlob(ctx context.Context, path string, content []byte, expectedRevision string, message string) error {
	payload := putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     expectedRevision,
		Branch:  c.branch,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading %s to %s: %w", path, c.repository, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// The API reports a stale or missing expected revision as either
		// status depending on the race.
		return fmt.Errorf("%w: %s", serrors.ErrRemoteConflict, path)
	default:
		return fmt.Errorf("uploading %s to %s: %s", path, c.repository, readAPIError(resp))
	}
}

func (c *Client) contentsURL(path string) string {
	escaped := url.PathEscape(path)
	// Keep path separators literal; only individual segments need escaping.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repository, escaped)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
}

// readAPIError extracts a short diagnostic from a non-success response.
func readAPIError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil || len(data) == 0 {
		return resp.Status
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("%s (%s)", resp.Status, apiErr.Message)
	}
	return resp.Status
}
