package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kitstore/internal/domain"
)

type stubAPI struct {
	mu sync.Mutex

	cart    []domain.CartItem
	cartErr error

	favorites []domain.Favorite
	favErr    error

	addErr  error
	addGate chan struct{} // when non-nil, AddCartItem blocks until closed

	getCartCalls int
	addCalls     int
	removedItems []int64
	addedFavs    []int64
	removedFavs  []int64
}

func (a *stubAPI) GetCart(_ context.Context) ([]domain.CartItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.getCartCalls++
	if a.cartErr != nil {
		return nil, a.cartErr
	}
	out := make([]domain.CartItem, len(a.cart))
	copy(out, a.cart)
	return out, nil
}

func (a *stubAPI) AddCartItem(_ context.Context, productID int64, quantity int) (*domain.CartItem, error) {
	a.mu.Lock()
	a.addCalls++
	gate := a.addGate
	err := a.addErr
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	item := domain.CartItem{ID: 100 + productID, Product: domain.Product{ID: productID}, Quantity: quantity}
	a.mu.Lock()
	a.cart = append(a.cart, item)
	a.mu.Unlock()
	return &item, nil
}

func (a *stubAPI) RemoveCartItem(_ context.Context, itemID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removedItems = append(a.removedItems, itemID)
	for i, item := range a.cart {
		if item.ID == itemID {
			a.cart = append(a.cart[:i], a.cart[i+1:]...)
			break
		}
	}
	return nil
}

func (a *stubAPI) GetFavorites(_ context.Context) ([]domain.Favorite, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.favErr != nil {
		return nil, a.favErr
	}
	out := make([]domain.Favorite, len(a.favorites))
	copy(out, a.favorites)
	return out, nil
}

func (a *stubAPI) AddFavorite(_ context.Context, productID int64) (*domain.Favorite, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addedFavs = append(a.addedFavs, productID)
	fav := domain.Favorite{ID: 200 + productID, Product: domain.Product{ID: productID}}
	a.favorites = append(a.favorites, fav)
	return &fav, nil
}

func (a *stubAPI) RemoveFavorite(_ context.Context, productID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removedFavs = append(a.removedFavs, productID)
	for i, fav := range a.favorites {
		if fav.Product.ID == productID {
			a.favorites = append(a.favorites[:i], a.favorites[i+1:]...)
			break
		}
	}
	return nil
}

func cartItem(itemID, productID int64, quantity int) domain.CartItem {
	return domain.CartItem{ID: itemID, Product: domain.Product{ID: productID}, Quantity: quantity}
}

func TestFetchCartDeduplicatesByProductID(t *testing.T) {
	api := &stubAPI{cart: []domain.CartItem{
		cartItem(1, 10, 3),
		cartItem(2, 11, 1),
		cartItem(3, 10, 5),
	}}
	s := New(api, nil)

	if err := s.FetchCart(context.Background()); err != nil {
		t.Fatalf("fetch cart: %v", err)
	}
	cart := s.Cart()
	if len(cart) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(cart))
	}
	if cart[0].ID != 1 || cart[0].Product.ID != 10 {
		t.Fatalf("expected first occurrence kept, got %+v", cart[0])
	}
	for _, item := range cart {
		if item.Quantity != 1 {
			t.Fatalf("expected quantity forced to 1, got %+v", item)
		}
	}
}

func TestFetchCartFailureKeepsPreviousState(t *testing.T) {
	api := &stubAPI{cart: []domain.CartItem{cartItem(1, 10, 1)}}
	s := New(api, nil)
	if err := s.FetchCart(context.Background()); err != nil {
		t.Fatalf("fetch cart: %v", err)
	}

	api.mu.Lock()
	api.cartErr = errors.New("boom")
	api.mu.Unlock()

	if err := s.FetchCart(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if got := s.Cart(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("previous cart should survive a failed fetch, got %+v", got)
	}
}

func TestAddToCartRejectsExistingMember(t *testing.T) {
	api := &stubAPI{cart: []domain.CartItem{cartItem(1, 42, 1)}}
	s := New(api, nil)
	if err := s.FetchCart(context.Background()); err != nil {
		t.Fatalf("fetch cart: %v", err)
	}
	api.mu.Lock()
	api.addCalls = 0
	api.mu.Unlock()

	if s.AddToCart(context.Background(), 42) {
		t.Fatalf("expected add of existing member to fail")
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.addCalls != 0 {
		t.Fatalf("expected no network call, got %d", api.addCalls)
	}
}

func TestAddToCartRapidDoubleSubmission(t *testing.T) {
	gate := make(chan struct{})
	api := &stubAPI{addGate: gate}
	s := New(api, nil)

	firstDone := make(chan bool, 1)
	go func() {
		firstDone <- s.AddToCart(context.Background(), 42)
	}()

	// Wait until the first call is in flight.
	deadline := time.After(2 * time.Second)
	for !s.IsPending(42) {
		select {
		case <-deadline:
			t.Fatalf("first add never became pending")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if s.AddToCart(context.Background(), 42) {
		t.Fatalf("second add should fail while first is pending")
	}
	if !s.InCart(42) {
		t.Fatalf("pending product should present as in cart")
	}

	close(gate)
	if ok := <-firstDone; !ok {
		t.Fatalf("first add should succeed")
	}

	api.mu.Lock()
	addCalls := api.addCalls
	api.mu.Unlock()
	if addCalls != 1 {
		t.Fatalf("expected exactly one POST, got %d", addCalls)
	}
	if s.IsPending(42) {
		t.Fatalf("pending flag must clear after settle")
	}
	if !s.InCart(42) {
		t.Fatalf("product should be a member after reconcile")
	}
}

func TestAddToCartFailureClearsPending(t *testing.T) {
	api := &stubAPI{addErr: errors.New("rejected")}
	s := New(api, nil)

	if s.AddToCart(context.Background(), 7) {
		t.Fatalf("expected add to fail")
	}
	if s.IsPending(7) {
		t.Fatalf("pending flag must clear on failure")
	}
	if s.InCart(7) {
		t.Fatalf("failed add must not leave the product in cart")
	}
}

func TestAddToCartReconcilesBeforeReturning(t *testing.T) {
	api := &stubAPI{}
	s := New(api, nil)

	if !s.AddToCart(context.Background(), 5) {
		t.Fatalf("expected add to succeed")
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.getCartCalls == 0 {
		t.Fatalf("expected reconciliation fetch after successful add")
	}
}

func TestRemoveFromCartDeletesByItemIDAndReconciles(t *testing.T) {
	api := &stubAPI{cart: []domain.CartItem{cartItem(9, 42, 1)}}
	s := New(api, nil)
	if err := s.FetchCart(context.Background()); err != nil {
		t.Fatalf("fetch cart: %v", err)
	}

	if err := s.RemoveFromCart(context.Background(), 9); err != nil {
		t.Fatalf("remove: %v", err)
	}
	api.mu.Lock()
	removed := append([]int64(nil), api.removedItems...)
	api.mu.Unlock()
	if len(removed) != 1 || removed[0] != 9 {
		t.Fatalf("expected delete by item id 9, got %v", removed)
	}
	if s.InCart(42) {
		t.Fatalf("product should be gone after reconcile")
	}
}

func TestToggleFavoriteAddsWhenAbsent(t *testing.T) {
	api := &stubAPI{}
	s := New(api, nil)

	if err := s.ToggleFavorite(context.Background(), 7); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	api.mu.Lock()
	added := append([]int64(nil), api.addedFavs...)
	api.mu.Unlock()
	if len(added) != 1 || added[0] != 7 {
		t.Fatalf("expected favorite POST for product 7, got %v", added)
	}
	if !s.IsFavorite(7) {
		t.Fatalf("product should be favorite after reconcile")
	}
}

func TestToggleFavoriteRemovesWhenPresent(t *testing.T) {
	api := &stubAPI{favorites: []domain.Favorite{{ID: 1, Product: domain.Product{ID: 7}}}}
	s := New(api, nil)
	if err := s.FetchFavorites(context.Background()); err != nil {
		t.Fatalf("fetch favorites: %v", err)
	}

	if err := s.ToggleFavorite(context.Background(), 7); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	api.mu.Lock()
	removed := append([]int64(nil), api.removedFavs...)
	api.mu.Unlock()
	if len(removed) != 1 || removed[0] != 7 {
		t.Fatalf("expected favorite DELETE for product 7, got %v", removed)
	}
	if s.IsFavorite(7) {
		t.Fatalf("product should not be favorite after reconcile")
	}
}

func TestFetchFavoritesFailureKeepsPreviousState(t *testing.T) {
	api := &stubAPI{favorites: []domain.Favorite{{ID: 1, Product: domain.Product{ID: 7}}}}
	s := New(api, nil)
	if err := s.FetchFavorites(context.Background()); err != nil {
		t.Fatalf("fetch favorites: %v", err)
	}

	api.mu.Lock()
	api.favErr = errors.New("boom")
	api.mu.Unlock()

	if err := s.FetchFavorites(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if !s.IsFavorite(7) {
		t.Fatalf("previous favorites should survive a failed fetch")
	}
}
