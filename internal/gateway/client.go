// Package gateway is the HTTP client for the storefront backend. It attaches
// the platform-host identity header to every call and maps auth failures to
// domain errors; callers never see transport details.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kitstore/internal/domain"
)

const identityHeader = "X-Telegram-User-Id"

type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	logger     *log.Logger
}

func New(baseURL, userID string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: baseURL,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type ListProductsParams struct {
	Search       string
	CategorySlug string
	Limit        int
	Offset       int
}

// ListProducts fetches the catalog. The response envelope is not strictly
// pinned by the backend, so the payload goes through the tolerant decode.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.CategorySlug != "" {
		q.Set("category_slug", params.CategorySlug)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	body, err := c.do(ctx, http.MethodGet, "/products/", q, nil)
	if err != nil {
		return nil, err
	}
	return DecodeProducts(body), nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/categories/", nil, nil)
	if err != nil {
		return nil, err
	}
	var categories []domain.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (c *Client) GetCart(ctx context.Context) ([]domain.CartItem, error) {
	body, err := c.do(ctx, http.MethodGet, "/cart/", nil, nil)
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (*domain.CartItem, error) {
	payload := map[string]interface{}{"product_id": productID, "quantity": quantity}
	body, err := c.do(ctx, http.MethodPost, "/cart/", nil, payload)
	if err != nil {
		return nil, err
	}
	var item domain.CartItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("decode cart item: %w", err)
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, nil)
	return err
}

func (c *Client) GetFavorites(ctx context.Context) ([]domain.Favorite, error) {
	body, err := c.do(ctx, http.MethodGet, "/favorites/", nil, nil)
	if err != nil {
		return nil, err
	}
	var favorites []domain.Favorite
	if err := json.Unmarshal(body, &favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, productID int64) (*domain.Favorite, error) {
	payload := map[string]interface{}{"product_id": productID}
	body, err := c.do(ctx, http.MethodPost, "/favorites/", nil, payload)
	if err != nil {
		return nil, err
	}
	var fav domain.Favorite
	if err := json.Unmarshal(body, &fav); err != nil {
		return nil, fmt.Errorf("decode favorite: %w", err)
	}
	return &fav, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", productID), nil, nil)
	return err
}

// CreateOrder turns the server-side cart into an order (checkout hand-off).
func (c *Client) CreateOrder(ctx context.Context) (*domain.Order, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders/", nil, nil)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(identityHeader, c.userID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Printf("gateway: %s %s unauthorized status=%d", method, path, resp.StatusCode)
		return nil, domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		return nil, fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, string(body))
	}
}
