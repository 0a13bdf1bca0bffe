package catalog

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/models"
)

// Filter is a conjunction of independent predicates. Predicate order does
// not affect the result.
type Filter struct {
	Category    string
	PriceMin    decimal.Decimal
	PriceMax    decimal.Decimal
	Brands      []string
	MinRating   float64
	InStockOnly bool
}

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
	SortNewest     SortKey = "newest"
)

// Apply returns the filtered, sorted subset of products. The input slice is
// not modified. Sorting is stable, so ties keep the order of the underlying
// collection.
func Apply(products []models.Product, filter Filter, key SortKey) []models.Product {
	result := make([]models.Product, 0, len(products))
	for _, product := range products {
		if matches(product, filter) {
			result = append(result, product)
		}
	}

	switch key {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[j].Price.LessThan(result[i].Price)
		})
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Rating > result[j].Rating
		})
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return newerThan(result[i].ID, result[j].ID)
		})
	default:
		// popularity: descending review count
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Reviews > result[j].Reviews
		})
	}

	return result
}

func matches(product models.Product, filter Filter) bool {
	if filter.Category != "" && product.Category != filter.Category {
		return false
	}
	if product.Price.LessThan(filter.PriceMin) {
		return false
	}
	if filter.PriceMax.IsPositive() && product.Price.GreaterThan(filter.PriceMax) {
		return false
	}
	if len(filter.Brands) > 0 {
		found := false
		for _, brand := range filter.Brands {
			if product.Brand == brand {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if product.Rating < filter.MinRating {
		return false
	}
	if filter.InStockOnly && !product.InStock {
		return false
	}
	return true
}

// newerThan orders ids numerically descending where both parse as integers,
// falling back to a lexical comparison for opaque ids.
func newerThan(a, b string) bool {
	numA, errA := strconv.ParseInt(a, 10, 64)
	numB, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return numA > numB
	}
	return a > b
}
