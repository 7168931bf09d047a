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

	"github.com/recipebook/recipes/internal/models"
)

// Client represents an HTTP client for the recipes API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the backend URL requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned when the backend answers outside the 2xx range
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("failed to %s (status %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("failed to %s (status %d): %s", e.Op, e.StatusCode, e.Body)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// newRequest builds a request, encoding body as JSON when present
func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return req, nil
}

// do sends req and fails with a StatusError on non-2xx. The caller closes the body.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

// ListRecipes returns the authenticated user's recipes in server order
func (c *Client) ListRecipes(ctx context.Context, token string) ([]models.Recipe, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/recipes", token, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "list recipes")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var recipes []models.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return recipes, nil
}

// CreateRecipe creates a new recipe
func (c *Client) CreateRecipe(ctx context.Context, token string, body models.CreateRecipeRequest) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/recipes", token, body)
	if err != nil {
		return err
	}

	resp, err := c.do(req, "create recipe")
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

// UpdateRecipe replaces the instructions of the recipe with the given id
func (c *Client) UpdateRecipe(ctx context.Context, token string, id int64, body models.UpdateRecipeRequest) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/recipes/%d", id), token, body)
	if err != nil {
		return err
	}

	resp, err := c.do(req, "update recipe")
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

// DeleteRecipe deletes a recipe by id
func (c *Client) DeleteRecipe(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d", id), token, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req, "delete recipe")
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

// Logout notifies the backend that the session ends. Any status counts as delivered;
// only transport failures are reported.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", token, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	resp.Body.Close()

	return nil
}

// Register posts a new account and returns the response status code. Interpreting the
// status is left to the caller.
func (c *Client) Register(ctx context.Context, body models.RegisterRequest) (int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/register", "", body)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
