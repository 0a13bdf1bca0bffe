package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
)

// CartLine is one product in a cart. There is at most one line per product
// id; adding an already-present product increments its quantity.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// cartState is the persisted slot shape. Total and ItemCount are derived
// from Items and recomputed on every persist, never patched incrementally.
type cartState struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Cart keeps an in-memory list of lines consistent with its persisted slot.
// All mutations are synchronous; persistence is best effort and suppressed
// until Hydrate has run, so an empty initial state never overwrites
// previously persisted data.
type Cart struct {
	key   string
	slots slot.Store

	mu    sync.Mutex
	lines []CartLine
	ready bool
}

func NewCart(slots slot.Store, owner string) *Cart {
	return &Cart{key: "cart:" + owner, slots: slots}
}

// Hydrate loads the persisted cart. It runs at most once per Cart; a missing
// or malformed slot yields an empty cart and is never surfaced to the caller.
func (c *Cart) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return
	}

	data, err := c.slots.Read(ctx, c.key)
	if err == nil {
		var state cartState
		if jsonErr := json.Unmarshal(data, &state); jsonErr != nil {
			log.Printf("Discarding malformed cart slot %s: %v", c.key, jsonErr)
		} else {
			c.lines = state.Items
		}
	} else if err != slot.ErrNotFound {
		log.Printf("Reading cart slot %s: %v", c.key, err)
	}

	c.ready = true
}

// Add appends a line with quantity 1, or increments the existing line for
// the same product id.
func (c *Cart) Add(ctx context.Context, product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			c.persistLocked(ctx)
			return
		}
	}

	c.lines = append(c.lines, CartLine{Product: product, Quantity: 1})
	c.persistLocked(ctx)
}

// SetQuantity sets the quantity for a product id. A quantity of zero or
// less removes the line; the UI routes decrement-below-one into removal and
// the store applies the same rule defensively.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(ctx, productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			c.persistLocked(ctx)
			return
		}
	}
}

// Remove drops the line for a product id. Removing an absent id is a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.lines[:0]
	for _, line := range c.lines {
		if line.Product.ID != productID {
			filtered = append(filtered, line)
		}
	}
	if len(filtered) == len(c.lines) {
		return
	}
	c.lines = filtered
	c.persistLocked(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persistLocked(ctx)
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// ItemCount is the sum of quantities across lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return itemCount(c.lines)
}

// Total is the sum of price times quantity across lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// State returns the lines together with the derived aggregates, as
// serialized into the slot.
func (c *Cart) State() (lines []CartLine, tot decimal.Decimal, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines = make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines, total(c.lines), itemCount(c.lines)
}

func (c *Cart) persistLocked(ctx context.Context) {
	if !c.ready {
		return
	}

	state := cartState{
		Items:     c.lines,
		Total:     total(c.lines),
		ItemCount: itemCount(c.lines),
	}
	if state.Items == nil {
		state.Items = []CartLine{}
	}

	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("Serializing cart slot %s: %v", c.key, err)
		return
	}
	if err := c.slots.Write(ctx, c.key, data); err != nil {
		log.Printf("Writing cart slot %s: %v", c.key, err)
	}
}

func itemCount(lines []CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

func total(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}
