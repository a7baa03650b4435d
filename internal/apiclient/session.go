package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/services"
)

type LoginResult struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return out, err
	}
	c.Token = out.Token
	return out, nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password, "name": name}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out)
	return out.User, err
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out, err
}

// Dashboard returns the figures computed by the server.
func (c *Client) Dashboard(ctx context.Context) (services.Dashboard, error) {
	var out services.Dashboard
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out)
	return out, err
}

// DashboardInput fetches every list, for computing the dashboard locally.
func (c *Client) DashboardInput(ctx context.Context) (services.DashboardInput, error) {
	var in services.DashboardInput
	var err error
	if in.Clients, err = c.ListClients(ctx); err != nil {
		return in, fmt.Errorf("clients: %w", err)
	}
	if in.Products, err = c.ListProducts(ctx); err != nil {
		return in, fmt.Errorf("products: %w", err)
	}
	if in.Vendors, err = c.ListVendors(ctx); err != nil {
		return in, fmt.Errorf("vendors: %w", err)
	}
	sales, err := c.ListSales(ctx)
	if err != nil {
		return in, fmt.Errorf("sales: %w", err)
	}
	for _, s := range sales {
		in.Sales = append(in.Sales, s.Sale)
	}
	purchases, err := c.ListPurchases(ctx)
	if err != nil {
		return in, fmt.Errorf("purchases: %w", err)
	}
	for _, p := range purchases {
		in.Purchases = append(in.Purchases, p.Purchase)
	}
	return in, nil
}
