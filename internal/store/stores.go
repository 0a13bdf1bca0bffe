package store

import (
	"context"
	"sync"

	"github.com/safar/shophub/internal/slot"
)

// Stores hands out the per-shopper list stores, constructing and hydrating
// each lazily on first use and keeping it for the life of the process.
type Stores struct {
	slots slot.Store

	mu       sync.Mutex
	carts    map[string]*Cart
	wishes   map[string]*Wishlist
	recently map[string]*RecentlyViewed
}

func New(slots slot.Store) *Stores {
	return &Stores{
		slots:    slots,
		carts:    make(map[string]*Cart),
		wishes:   make(map[string]*Wishlist),
		recently: make(map[string]*RecentlyViewed),
	}
}

func (s *Stores) Cart(ctx context.Context, owner string) *Cart {
	s.mu.Lock()
	cart, ok := s.carts[owner]
	if !ok {
		cart = NewCart(s.slots, owner)
		s.carts[owner] = cart
	}
	s.mu.Unlock()

	cart.Hydrate(ctx)
	return cart
}

func (s *Stores) Wishlist(ctx context.Context, owner string) *Wishlist {
	s.mu.Lock()
	wishlist, ok := s.wishes[owner]
	if !ok {
		wishlist = NewWishlist(s.slots, owner)
		s.wishes[owner] = wishlist
	}
	s.mu.Unlock()

	wishlist.Hydrate(ctx)
	return wishlist
}

func (s *Stores) RecentlyViewed(ctx context.Context, owner string) *RecentlyViewed {
	s.mu.Lock()
	recent, ok := s.recently[owner]
	if !ok {
		recent = NewRecentlyViewed(s.slots, owner)
		s.recently[owner] = recent
	}
	s.mu.Unlock()

	recent.Hydrate(ctx)
	return recent
}
