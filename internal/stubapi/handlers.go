package stubapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kitstore/internal/domain"
	"kitstore/internal/media"
)

const (
	defaultLimit = 300
	maxLimit     = 500
)

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) listProducts(c *gin.Context) {
	search := c.Query("search")
	categorySlug := c.Query("category_slug")
	limit := clampLimit(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}

	s.mu.Lock()
	all := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	filtered := all[:0:0]
	for _, p := range all {
		if categorySlug != "" && (p.Category == nil || p.Category.Slug != categorySlug) {
			continue
		}
		if search != "" && !searchMatch(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}
	if offset > len(filtered) {
		offset = len(filtered)
	}
	filtered = filtered[offset:]
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	base := requestBase(c)
	out := make([]domain.Product, len(filtered))
	for i, p := range filtered {
		out[i] = normalized(base, p)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product ID"})
		return
	}
	s.mu.Lock()
	p, ok := s.products[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, normalized(requestBase(c), p))
}

type productCreate struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	TgPostURL    string   `json:"tg_post_url"`
	Team         string   `json:"team"`
	Size         string   `json:"size"`
	Brand        string   `json:"brand"`
	League       string   `json:"league"`
	Season       string   `json:"season"`
	KitType      string   `json:"kit_type"`
	ImageURL     string   `json:"image_url"`
	Gallery      []string `json:"gallery"`
	CategorySlug string   `json:"category_slug" binding:"required"`
}

func (s *Server) createProduct(c *gin.Context) {
	var in productCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	imageURL := in.ImageURL
	extras := in.Gallery
	if imageURL == "" && len(extras) > 0 {
		imageURL = extras[0]
		extras = extras[1:]
	}
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Product requires at least one image"})
		return
	}

	s.mu.Lock()
	cat := s.ensureCategoryLocked(in.CategorySlug, "")
	p := domain.Product{
		ID:          s.allocIDLocked(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		TgPostURL:   in.TgPostURL,
		Team:        in.Team,
		Size:        in.Size,
		Brand:       in.Brand,
		League:      in.League,
		Season:      in.Season,
		KitType:     in.KitType,
		ImageURL:    imageURL,
		Category:    &cat,
		Gallery:     buildGallery(imageURL, extras),
	}
	s.products[p.ID] = p
	s.mu.Unlock()

	c.JSON(http.StatusCreated, normalized(requestBase(c), p))
}

type productPatch struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	TgPostURL    *string  `json:"tg_post_url"`
	Team         *string  `json:"team"`
	Size         *string  `json:"size"`
	Brand        *string  `json:"brand"`
	League       *string  `json:"league"`
	Season       *string  `json:"season"`
	KitType      *string  `json:"kit_type"`
	ImageURL     *string  `json:"image_url"`
	Gallery      []string `json:"gallery"`
	CategorySlug *string  `json:"category_slug"`
}

func (s *Server) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product ID"})
		return
	}
	var in productPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}

	if in.Gallery != nil {
		imageURL := p.ImageURL
		extras := in.Gallery
		if in.ImageURL != nil {
			imageURL = *in.ImageURL
		} else if len(extras) > 0 {
			imageURL = extras[0]
			extras = extras[1:]
		}
		p.ImageURL = imageURL
		p.Gallery = buildGallery(imageURL, extras)
	} else if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
		p.Gallery = buildGallery(p.ImageURL, nil)
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.TgPostURL != nil {
		p.TgPostURL = *in.TgPostURL
	}
	if in.Team != nil {
		p.Team = *in.Team
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.League != nil {
		p.League = *in.League
	}
	if in.Season != nil {
		p.Season = *in.Season
	}
	if in.KitType != nil {
		p.KitType = *in.KitType
	}
	if in.CategorySlug != nil {
		cat := s.ensureCategoryLocked(*in.CategorySlug, "")
		p.Category = &cat
	}

	s.products[id] = p
	s.mu.Unlock()

	c.JSON(http.StatusOK, normalized(requestBase(c), p))
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product ID"})
		return
	}
	s.mu.Lock()
	_, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	delete(s.products, id)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) getCart(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	base := requestBase(c)
	s.mu.Lock()
	out := make([]domain.CartItem, 0)
	for _, row := range s.cartRows {
		if row.userID != userID {
			continue
		}
		p, exists := s.products[row.productID]
		if !exists {
			continue
		}
		out = append(out, domain.CartItem{ID: row.id, Product: normalized(base, p), Quantity: row.quantity})
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

type cartItemCreate struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func (s *Server) addToCart(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	var in cartItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	p, exists := s.products[in.ProductID]
	if !exists {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}

	// Duplicate add resets quantity to 1 instead of incrementing; the cart
	// tracks presence, not quantity.
	var row *cartRow
	for i := range s.cartRows {
		if s.cartRows[i].userID == userID && s.cartRows[i].productID == in.ProductID {
			row = &s.cartRows[i]
			break
		}
	}
	if row != nil {
		row.quantity = 1
	} else {
		s.cartRows = append(s.cartRows, cartRow{
			id:        s.allocIDLocked(),
			userID:    userID,
			productID: in.ProductID,
			quantity:  1,
		})
		row = &s.cartRows[len(s.cartRows)-1]
	}
	item := domain.CartItem{ID: row.id, Product: normalized(requestBase(c), p), Quantity: row.quantity}
	s.mu.Unlock()

	c.JSON(http.StatusOK, item)
}

func (s *Server) removeFromCart(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid item ID"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.cartRows {
		if row.id == itemID && row.userID == userID {
			s.cartRows = append(s.cartRows[:i], s.cartRows[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
}

func (s *Server) getFavorites(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	base := requestBase(c)
	s.mu.Lock()
	out := make([]domain.Favorite, 0)
	for _, row := range s.favRows {
		if row.userID != userID {
			continue
		}
		p, exists := s.products[row.productID]
		if !exists {
			continue
		}
		out = append(out, domain.Favorite{ID: row.id, Product: normalized(base, p)})
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

type favoriteCreate struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (s *Server) addFavorite(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	var in favoriteCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	for _, row := range s.favRows {
		if row.userID == userID && row.productID == in.ProductID {
			s.mu.Unlock()
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Already in favorites"})
			return
		}
	}
	p, exists := s.products[in.ProductID]
	if !exists {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	row := favRow{id: s.allocIDLocked(), userID: userID, productID: in.ProductID}
	s.favRows = append(s.favRows, row)
	fav := domain.Favorite{ID: row.id, Product: normalized(requestBase(c), p)}
	s.mu.Unlock()

	c.JSON(http.StatusOK, fav)
}

func (s *Server) removeFavorite(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product ID"})
		return
	}
	s.mu.Lock()
	for i, row := range s.favRows {
		if row.userID == userID && row.productID == productID {
			s.favRows = append(s.favRows[:i], s.favRows[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	// Idempotent like the real backend.
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) createOrder(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	var items []domain.OrderItem
	var total float64
	remaining := s.cartRows[:0]
	for _, row := range s.cartRows {
		if row.userID != userID {
			remaining = append(remaining, row)
			continue
		}
		p, exists := s.products[row.productID]
		if !exists {
			continue
		}
		productID := p.ID
		items = append(items, domain.OrderItem{
			ID:          s.allocIDLocked(),
			ProductID:   &productID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    row.quantity,
		})
		total += p.Price * float64(row.quantity)
	}
	if len(items) == 0 {
		s.cartRows = remaining
		s.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cart is empty"})
		return
	}
	order := domain.Order{
		ID:         s.allocIDLocked(),
		CreatedAt:  time.Now().UTC(),
		TotalPrice: total,
		Status:     domain.OrderStatusReceived,
		Items:      items,
	}
	s.orders = append(s.orders, order)
	s.cartRows = remaining
	s.mu.Unlock()

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	var start, end time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := parseISO(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid start date"})
			return
		}
		start = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseISO(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid end date"})
			return
		}
		end = t
	}

	s.mu.Lock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if !start.IsZero() && o.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && o.CreatedAt.After(end) {
			continue
		}
		out = append(out, o)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	c.JSON(http.StatusOK, out)
}

type orderStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid order ID"})
		return
	}
	var in orderStatusUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	switch in.Status {
	case domain.OrderStatusReceived, domain.OrderStatusPaid, domain.OrderStatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = in.Status
			c.JSON(http.StatusOK, s.orders[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
}

func (s *Server) userID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader("X-Telegram-User-Id")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Missing user ID"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid User ID"})
		return 0, false
	}
	return id, true
}

func clampLimit(raw string) int {
	limit := defaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func searchMatch(p domain.Product, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{p.Name, p.Team, p.Brand, p.League} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/"
}

// normalized returns a copy of the product with media URLs made absolute
// against the request base, without touching stored state.
func normalized(base string, p domain.Product) domain.Product {
	gallery := make([]string, len(p.Gallery))
	copy(gallery, p.Gallery)
	p.Gallery = gallery
	media.NormalizeProduct(base, &p)
	return p
}

// buildGallery mirrors the backend's gallery property: primary image first,
// then the extra images, skipping blanks and duplicates of the primary.
func buildGallery(imageURL string, extras []string) []string {
	gallery := []string{imageURL}
	for _, img := range extras {
		if img == "" || img == imageURL {
			continue
		}
		gallery = append(gallery, img)
	}
	return gallery
}

// parseISO accepts the date shapes the admin console sends: full RFC 3339
// (with or without Z), a bare datetime, or a bare date.
func parseISO(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
