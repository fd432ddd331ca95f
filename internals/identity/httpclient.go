package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client talks to the identity provider's management REST API with a
// server-side API key.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

var _ Service = (*Client)(nil)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/v1/users", in, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) error {
	return c.do(ctx, http.MethodPatch, "/v1/users/"+id.String(), in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/users/"+id.String(), nil, nil)
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/v1/users/"+id.String(), nil, &out)
	return out, err
}

func (c *Client) UpdateProfileImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	url := c.BaseURL + "/v1/users/" + id.String() + "/profile_image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("identity: decode response: %w", err)
	}
	return out.ImageURL, nil
}

func (c *Client) CreateEmailAddress(ctx context.Context, id uuid.UUID, email string) error {
	body := map[string]string{"user_id": id.String(), "email": email}
	return c.do(ctx, http.MethodPost, "/v1/email_addresses", body, nil)
}

func (c *Client) DeleteEmailAddress(ctx context.Context, id uuid.UUID, email string) error {
	body := map[string]string{"user_id": id.String(), "email": email}
	return c.do(ctx, http.MethodDelete, "/v1/email_addresses", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("identity: decode response: %w", err)
		}
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrUsernameTaken
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity: provider returned %d: %s", resp.StatusCode, string(raw))
	}
}
