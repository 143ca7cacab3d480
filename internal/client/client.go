// Package client talks to the job board REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/justsurfingit/jobboard/internal/models"
)

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Client struct {
	baseURL   string
	http      *http.Client
	userToken string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithUserToken sets the identity-provider session token used on /user routes.
func WithUserToken(token string) Option { return func(c *Client) { c.userToken = token } }

// New returns a client for baseURL, e.g. http://localhost:5000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// JobList fetches every visible posting, oldest first.
func (c *Client) JobList(ctx context.Context) ([]models.Job, error) {
	var out struct {
		JobList []models.Job `json:"jobList"`
	}
	if err := c.do(ctx, http.MethodGet, "/job/job-list", nil, &out); err != nil {
		return nil, err
	}
	return out.JobList, nil
}

func (c *Client) Apply(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodPost, "/user/apply-job", map[string]string{"jobId": jobID}, nil)
}

func (c *Client) Applications(ctx context.Context) ([]models.JobApplication, error) {
	var out struct {
		JobApplications []models.JobApplication `json:"jobApplications"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/user-application", nil, &out); err != nil {
		return nil, err
	}
	return out.JobApplications, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.userToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response body"}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
