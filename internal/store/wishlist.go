package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
)

// Wishlist keeps an ordered set of products. A product id appears at most
// once; adding a duplicate is a no-op.
type Wishlist struct {
	key   string
	slots slot.Store

	mu      sync.Mutex
	entries []models.Product
	ready   bool
}

func NewWishlist(slots slot.Store, owner string) *Wishlist {
	return &Wishlist{key: "wishlist:" + owner, slots: slots}
}

func (w *Wishlist) Hydrate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ready {
		return
	}

	data, err := w.slots.Read(ctx, w.key)
	if err == nil {
		var entries []models.Product
		if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
			log.Printf("Discarding malformed wishlist slot %s: %v", w.key, jsonErr)
		} else {
			w.entries = entries
		}
	} else if err != slot.ErrNotFound {
		log.Printf("Reading wishlist slot %s: %v", w.key, err)
	}

	w.ready = true
}

func (w *Wishlist) Add(ctx context.Context, product models.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, entry := range w.entries {
		if entry.ID == product.ID {
			return
		}
	}

	w.entries = append(w.entries, product)
	w.persistLocked(ctx)
}

func (w *Wishlist) Remove(ctx context.Context, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	filtered := w.entries[:0]
	for _, entry := range w.entries {
		if entry.ID != productID {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == len(w.entries) {
		return
	}
	w.entries = filtered
	w.persistLocked(ctx)
}

// Contains drives idempotent UI toggles.
func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, entry := range w.entries {
		if entry.ID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = nil
	w.persistLocked(ctx)
}

func (w *Wishlist) Products() []models.Product {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]models.Product, len(w.entries))
	copy(entries, w.entries)
	return entries
}

func (w *Wishlist) persistLocked(ctx context.Context) {
	if !w.ready {
		return
	}

	entries := w.entries
	if entries == nil {
		entries = []models.Product{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Serializing wishlist slot %s: %v", w.key, err)
		return
	}
	if err := w.slots.Write(ctx, w.key, data); err != nil {
		log.Printf("Writing wishlist slot %s: %v", w.key, err)
	}
}
