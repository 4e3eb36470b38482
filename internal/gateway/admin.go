package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"kitstore/internal/domain"
)

// Admin console operations. Same transport and identity handling as the
// storefront calls; the backend gates these separately.

type ProductInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	TgPostURL    string   `json:"tg_post_url,omitempty"`
	Team         string   `json:"team,omitempty"`
	Size         string   `json:"size,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	League       string   `json:"league,omitempty"`
	Season       string   `json:"season,omitempty"`
	KitType      string   `json:"kit_type,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Gallery      []string `json:"gallery,omitempty"`
	CategorySlug string   `json:"category_slug"`
}

type ProductPatch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	TgPostURL    *string  `json:"tg_post_url,omitempty"`
	Team         *string  `json:"team,omitempty"`
	Size         *string  `json:"size,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	League       *string  `json:"league,omitempty"`
	Season       *string  `json:"season,omitempty"`
	KitType      *string  `json:"kit_type,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Gallery      []string `json:"gallery,omitempty"`
	CategorySlug *string  `json:"category_slug,omitempty"`
}

type ListOrdersParams struct {
	StartDate time.Time
	EndDate   time.Time
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/products/", nil, in)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, patch)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
	return err
}

// ListOrders returns orders newest-first, optionally bounded by creation time.
func (c *Client) ListOrders(ctx context.Context, params ListOrdersParams) ([]domain.Order, error) {
	q := url.Values{}
	if !params.StartDate.IsZero() {
		q.Set("start_date", params.StartDate.Format(time.RFC3339))
	}
	if !params.EndDate.IsZero() {
		q.Set("end_date", params.EndDate.Format(time.RFC3339))
	}
	body, err := c.do(ctx, http.MethodGet, "/orders/", q, nil)
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	payload := map[string]string{"status": status}
	body, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", id), nil, payload)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}
