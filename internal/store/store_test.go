package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
)

// recordingSlot counts writes so tests can assert persistence is suppressed
// until hydration.
type recordingSlot struct {
	slot.Store
	writes int
}

func newRecordingSlot() *recordingSlot {
	return &recordingSlot{Store: slot.NewMemory()}
}

func (r *recordingSlot) Write(ctx context.Context, key string, value []byte) error {
	r.writes++
	return r.Store.Write(ctx, key, value)
}

func testProduct(id, price string) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Brand:    "Acme",
		Price:    decimal.RequireFromString(price),
		Category: "Electronics",
		InStock:  true,
	}
}
