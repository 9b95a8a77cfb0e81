// Package client talks to the tasks HTTP API the same way the browser client
// does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
)

const DefaultBaseURL = "http://localhost:5000/api/tasks"

// ErrEmptyTitle is returned by Add before any request is made.
var ErrEmptyTitle = errors.New("title is required")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) List(ctx context.Context, filter models.Filter) ([]models.Task, error) {
	u := c.baseURL
	if completed := filter.Completed(); completed != nil {
		u += "?" + url.Values{"completed": {strconv.FormatBool(*completed)}}.Encode()
	}

	tasks := []models.Task{}
	if err := c.do(ctx, http.MethodGet, u, nil, &tasks, "Failed to load tasks"); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, c.baseURL+"/stats", nil, &stats, "Failed to load task stats")
	return stats, err
}

func (c *Client) Add(ctx context.Context, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}

	var task models.Task
	err := c.do(ctx, http.MethodPost, c.baseURL, map[string]string{"title": title}, &task, "Failed to create a task")
	return task, err
}

func (c *Client) SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPut, c.taskURL(id), map[string]bool{"completed": completed}, &task, "Failed to update a task")
	return task, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil, "Failed to delete a task")
}

func (c *Client) taskURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, u string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = fallback
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("decode response: missing data")
	}
	return json.Unmarshal(env.Data, out)
}
