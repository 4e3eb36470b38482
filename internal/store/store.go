// Package store is the single source of truth for the user's cart and
// favorites. Collections are server-owned: every mutation goes to the backend
// and is followed by a reconciliation refetch that replaces the local copy
// wholesale. The pending set guards add-to-cart against same-client double
// submission.
package store

import (
	"context"
	"io"
	"log"
	"sync"

	"kitstore/internal/domain"
)

type api interface {
	GetCart(ctx context.Context) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID int64) error
	GetFavorites(ctx context.Context) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, productID int64) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, productID int64) error
}

type Store struct {
	api    api
	logger *log.Logger

	mu        sync.Mutex
	cart      []domain.CartItem
	favorites []domain.Favorite
	pending   map[int64]struct{}
}

func New(api api, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		api:     api,
		logger:  logger,
		pending: make(map[int64]struct{}),
	}
}

// FetchCart replaces the local cart with the server's collection,
// deduplicated by product id (first occurrence wins, quantity forced to 1).
// On failure the previous cart is left untouched.
func (s *Store) FetchCart(ctx context.Context) error {
	items, err := s.api.GetCart(ctx)
	if err != nil {
		s.logger.Printf("store: fetch cart: %v", err)
		return err
	}

	seen := make(map[int64]struct{}, len(items))
	deduped := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Product.ID]; ok {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		item.Quantity = 1
		deduped = append(deduped, item)
	}

	s.mu.Lock()
	s.cart = deduped
	s.mu.Unlock()
	return nil
}

// FetchFavorites replaces the local favorites with the server's collection.
// The server enforces uniqueness per product, so no deduplication here.
func (s *Store) FetchFavorites(ctx context.Context) error {
	favorites, err := s.api.GetFavorites(ctx)
	if err != nil {
		s.logger.Printf("store: fetch favorites: %v", err)
		return err
	}
	s.mu.Lock()
	s.favorites = favorites
	s.mu.Unlock()
	return nil
}

// AddToCart adds the product with quantity 1. Returns false without issuing
// a network call when the product is already in the cart or an add for it is
// still in flight. The pending entry is set before the call and removed on
// both outcomes, so no partial state survives a failure.
func (s *Store) AddToCart(ctx context.Context, productID int64) bool {
	s.mu.Lock()
	if s.memberLocked(productID) {
		s.mu.Unlock()
		return false
	}
	if _, inFlight := s.pending[productID]; inFlight {
		s.mu.Unlock()
		return false
	}
	s.pending[productID] = struct{}{}
	s.mu.Unlock()

	_, err := s.api.AddCartItem(ctx, productID, 1)
	if err == nil {
		// Reconcile before releasing the pending flag so the product never
		// flickers out of the "in cart" state between settle and refetch.
		if ferr := s.FetchCart(ctx); ferr != nil {
			s.logger.Printf("store: reconcile after add product_id=%d: %v", productID, ferr)
		}
	} else {
		s.logger.Printf("store: add to cart product_id=%d: %v", productID, err)
	}

	s.mu.Lock()
	delete(s.pending, productID)
	s.mu.Unlock()
	return err == nil
}

// RemoveFromCart deletes by cart-item id and reconciles. Removal is
// pessimistic: local state is only changed by the refetch.
func (s *Store) RemoveFromCart(ctx context.Context, itemID int64) error {
	if err := s.api.RemoveCartItem(ctx, itemID); err != nil {
		s.logger.Printf("store: remove cart item id=%d: %v", itemID, err)
		return err
	}
	if err := s.FetchCart(ctx); err != nil {
		s.logger.Printf("store: reconcile after remove item_id=%d: %v", itemID, err)
	}
	return nil
}

// ToggleFavorite flips the favorite status of the product and reconciles.
// There is no pending guard on this path; a rapid double toggle races.
func (s *Store) ToggleFavorite(ctx context.Context, productID int64) error {
	s.mu.Lock()
	favorited := s.favoriteLocked(productID)
	s.mu.Unlock()

	var err error
	if favorited {
		err = s.api.RemoveFavorite(ctx, productID)
	} else {
		_, err = s.api.AddFavorite(ctx, productID)
	}
	if err != nil {
		s.logger.Printf("store: toggle favorite product_id=%d: %v", productID, err)
		return err
	}
	if err := s.FetchFavorites(ctx); err != nil {
		s.logger.Printf("store: reconcile after toggle product_id=%d: %v", productID, err)
	}
	return nil
}

// Cart returns a snapshot copy of the cart collection.
func (s *Store) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// Favorites returns a snapshot copy of the favorites collection.
func (s *Store) Favorites() []domain.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// InCart reports whether the product is a cart member or has an add in
// flight; the optimistic "in cart" state the UI renders.
func (s *Store) InCart(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memberLocked(productID) {
		return true
	}
	_, inFlight := s.pending[productID]
	return inFlight
}

// IsPending reports whether an add-to-cart call for the product is in flight.
func (s *Store) IsPending(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, inFlight := s.pending[productID]
	return inFlight
}

func (s *Store) IsFavorite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteLocked(productID)
}

func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart)
}

func (s *Store) memberLocked(productID int64) bool {
	for _, item := range s.cart {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

func (s *Store) favoriteLocked(productID int64) bool {
	for _, fav := range s.favorites {
		if fav.Product.ID == productID {
			return true
		}
	}
	return false
}
