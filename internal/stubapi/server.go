// Package stubapi is an in-memory stand-in for the storefront backend, used
// by cmd/stubd for local development and by integration tests. It mirrors the
// real API's observable behavior (limit clamping, duplicate handling, order
// snapshots) but persists nothing.
package stubapi

import (
	"io"
	"log"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kitstore/internal/domain"
)

type Server struct {
	logger *log.Logger

	mu         sync.Mutex
	products   map[int64]domain.Product
	categories map[string]domain.Category
	cartRows   []cartRow
	favRows    []favRow
	orders     []domain.Order
	nextID     int64
}

type cartRow struct {
	id        int64
	userID    int64
	productID int64
	quantity  int
}

type favRow struct {
	id        int64
	userID    int64
	productID int64
}

func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		logger:     logger,
		products:   make(map[int64]domain.Product),
		categories: make(map[string]domain.Category),
	}
}

// Engine builds the gin router. The Mini App webview calls cross-origin, so
// CORS stays permissive like the real backend's.
func (s *Server) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(s.logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Telegram-User-Id"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/categories/", s.listCategories)
	router.GET("/products/", s.listProducts)
	router.GET("/products/:id", s.getProduct)
	router.POST("/products/", s.createProduct)
	router.PUT("/products/:id", s.updateProduct)
	router.DELETE("/products/:id", s.deleteProduct)

	router.GET("/cart/", s.getCart)
	router.POST("/cart/", s.addToCart)
	router.DELETE("/cart/:item_id", s.removeFromCart)

	router.GET("/favorites/", s.getFavorites)
	router.POST("/favorites/", s.addFavorite)
	router.DELETE("/favorites/:product_id", s.removeFavorite)

	router.POST("/orders/", s.createOrder)
	router.GET("/orders/", s.listOrders)
	router.PATCH("/orders/:id", s.updateOrderStatus)

	return router
}

// Seed loads products (creating categories by slug as needed) without going
// through the HTTP surface.
func (s *Server) Seed(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.allocIDLocked()
		}
		if p.Category != nil {
			cat := s.ensureCategoryLocked(p.Category.Slug, p.Category.Name)
			p.Category = &cat
		}
		s.products[p.ID] = p
	}
}

func (s *Server) allocIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) ensureCategoryLocked(slug, name string) domain.Category {
	if cat, ok := s.categories[slug]; ok {
		return cat
	}
	if name == "" {
		name = titleFromSlug(slug)
	}
	cat := domain.Category{ID: s.allocIDLocked(), Name: name, Slug: slug}
	s.categories[slug] = cat
	return cat
}
