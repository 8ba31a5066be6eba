package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"carometro/internal/auth"
)

// Client calls the hosting portal's employee directory. The portal is the
// only authority on who a staff member is; this service never stores
// credentials of its own.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. With skip=true every lookup resolves to a stub
// admin, which keeps local development off the portal.
func New(baseURL string, skip bool) *Client {
	return &Client{
		BaseURL: baseURL,
		Skip:    skip,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveEmployee maps an external employee ID onto a session user.
func (c *Client) ResolveEmployee(ctx context.Context, employeeID string) (auth.User, error) {
	if c.Skip {
		return auth.User{
			ID:         "dev-admin",
			Name:       "Usuário de Teste",
			Role:       auth.RoleAdmin,
			Email:      "teste@escola.local",
			EmployeeID: employeeID,
		}, nil
	}
	if employeeID == "" {
		return auth.User{}, fmt.Errorf("employee id required")
	}

	endpoint := c.BaseURL + "/employees/" + url.PathEscape(employeeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return auth.User{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return auth.User{}, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return auth.User{}, fmt.Errorf("portal error %s: %s", resp.Status, string(body))
	}

	var out struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return auth.User{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Name == "" {
		return auth.User{}, fmt.Errorf("employee %s not found", employeeID)
	}

	role := auth.Role(out.Role)
	if !role.IsValid() {
		role = auth.RoleUser
	}
	return auth.User{
		ID:         out.ID,
		Name:       out.Name,
		Role:       role,
		Email:      out.Email,
		EmployeeID: employeeID,
	}, nil
}

// Health checks if the portal is reachable.
func (c *Client) Health(ctx context.Context) error {
	if c.Skip {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("portal unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("portal unhealthy: %s", resp.Status)
	}
	return nil
}
