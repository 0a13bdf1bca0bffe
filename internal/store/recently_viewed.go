package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
)

// RecentlyViewedLimit caps the list; the oldest entry is evicted first.
const RecentlyViewedLimit = 10

// RecentlyViewed keeps products in most-recently-viewed-first order.
// Re-viewing a product moves it to the front without duplicating it.
type RecentlyViewed struct {
	key   string
	slots slot.Store

	mu      sync.Mutex
	entries []models.Product
	ready   bool
}

func NewRecentlyViewed(slots slot.Store, owner string) *RecentlyViewed {
	return &RecentlyViewed{key: "recently_viewed:" + owner, slots: slots}
}

func (r *RecentlyViewed) Hydrate(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return
	}

	data, err := r.slots.Read(ctx, r.key)
	if err == nil {
		var entries []models.Product
		if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
			log.Printf("Discarding malformed recently viewed slot %s: %v", r.key, jsonErr)
		} else {
			if len(entries) > RecentlyViewedLimit {
				entries = entries[:RecentlyViewedLimit]
			}
			r.entries = entries
		}
	} else if err != slot.ErrNotFound {
		log.Printf("Reading recently viewed slot %s: %v", r.key, err)
	}

	r.ready = true
}

func (r *RecentlyViewed) Add(ctx context.Context, product models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]models.Product, 0, len(r.entries)+1)
	filtered = append(filtered, product)
	for _, entry := range r.entries {
		if entry.ID != product.ID {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) > RecentlyViewedLimit {
		filtered = filtered[:RecentlyViewedLimit]
	}

	r.entries = filtered
	r.persistLocked(ctx)
}

func (r *RecentlyViewed) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.persistLocked(ctx)
}

func (r *RecentlyViewed) Products() []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.Product, len(r.entries))
	copy(entries, r.entries)
	return entries
}

func (r *RecentlyViewed) persistLocked(ctx context.Context) {
	if !r.ready {
		return
	}

	entries := r.entries
	if entries == nil {
		entries = []models.Product{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Serializing recently viewed slot %s: %v", r.key, err)
		return
	}
	if err := r.slots.Write(ctx, r.key, data); err != nil {
		log.Printf("Writing recently viewed slot %s: %v", r.key, err)
	}
}
