package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/catalog"
	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/users"
)

func createVendor(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	vendor, err := users.NewRegistry(db).Create(context.Background(), email, "password", "Test Vendor", models.RoleVendor)
	if err != nil {
		t.Fatalf("Create vendor: %v", err)
	}
	return vendor
}

func TestProductLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	vendor := createVendor(t, db, "vendor@example.com")

	original := decimal.RequireFromString("129.99")
	product, err := catalog.CreateProduct(ctx, db, catalog.CreateProductRequest{
		VendorID:      vendor.ID,
		Name:          "Wireless Headphones",
		Brand:         "Aura",
		Description:   "Over-ear, 30h battery",
		Category:      "Electronics",
		Price:         decimal.RequireFromString("99.99"),
		OriginalPrice: &original,
		InStock:       true,
		Features:      []string{"Bluetooth 5.3", "Active noise cancelling"},
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	fetched, err := catalog.GetProduct(ctx, db, product.ID)
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if !fetched.Price.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("Expected price 99.99, got %s", fetched.Price)
	}
	if fetched.OriginalPrice == nil || !fetched.OriginalPrice.Equal(original) {
		t.Errorf("Expected original price %s, got %v", original, fetched.OriginalPrice)
	}
	if len(fetched.Features) != 2 {
		t.Errorf("Expected 2 features, got %d", len(fetched.Features))
	}

	updated, err := catalog.UpdateProduct(ctx, db, product.ID, vendor.ID, catalog.UpdateProductRequest{
		Name:     "Wireless Headphones v2",
		Brand:    "Aura",
		Category: "Electronics",
		Price:    decimal.RequireFromString("89.99"),
		InStock:  false,
		Features: []string{"Bluetooth 5.3"},
	})
	if err != nil {
		t.Fatalf("Update product: %v", err)
	}
	if updated.Version != fetched.Version+1 {
		t.Errorf("Expected version bump to %d, got %d", fetched.Version+1, updated.Version)
	}
	if updated.InStock {
		t.Errorf("Expected product out of stock after update")
	}

	if err := catalog.DeleteProduct(ctx, db, product.ID, vendor.ID); err != nil {
		t.Fatalf("Delete product: %v", err)
	}

	if _, err := catalog.GetProduct(ctx, db, product.ID); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected product not found after delete, got: %v", err)
	}
}

func TestVendorScoping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createVendor(t, db, "owner@example.com")
	other := createVendor(t, db, "other@example.com")

	product, err := catalog.CreateProduct(ctx, db, catalog.CreateProductRequest{
		VendorID: owner.ID,
		Name:     "Desk Lamp",
		Category: "Home",
		Price:    decimal.RequireFromString("24.50"),
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	_, err = catalog.UpdateProduct(ctx, db, product.ID, other.ID, catalog.UpdateProductRequest{
		Name:     "Hijacked",
		Category: "Home",
		Price:    decimal.RequireFromString("1.00"),
	})
	if !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected not found for foreign vendor update, got: %v", err)
	}

	if err := catalog.DeleteProduct(ctx, db, product.ID, other.ID); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected not found for foreign vendor delete, got: %v", err)
	}
}

func TestListProductsAndCategories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	vendor := createVendor(t, db, "vendor@example.com")

	for _, item := range []struct {
		name, category string
		price          string
	}{
		{"Headphones", "Electronics", "79.99"},
		{"Keyboard", "Electronics", "120.00"},
		{"Blender", "Kitchen", "59.00"},
	} {
		_, err := catalog.CreateProduct(ctx, db, catalog.CreateProductRequest{
			VendorID: vendor.ID,
			Name:     item.name,
			Category: item.category,
			Price:    decimal.RequireFromString(item.price),
			InStock:  true,
		})
		if err != nil {
			t.Fatalf("Create product %s: %v", item.name, err)
		}
	}

	page, err := catalog.ListProducts(ctx, db, catalog.Filter{}, catalog.SortPopularity, 1, 20)
	if err != nil {
		t.Fatalf("List products: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("Expected total 3, got %d", page.Total)
	}

	vendorPage, err := catalog.ListVendorProducts(ctx, db, vendor.ID, 1, 2)
	if err != nil {
		t.Fatalf("List vendor products: %v", err)
	}
	if vendorPage.TotalPages != 2 {
		t.Errorf("Expected 2 pages of 2, got %d", vendorPage.TotalPages)
	}

	categories, err := catalog.ListCategories(ctx, db)
	if err != nil {
		t.Fatalf("List categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Electronics" || categories[1] != "Kitchen" {
		t.Errorf("Expected [Electronics Kitchen], got %v", categories)
	}
}

func TestFilteredListingSpansPages(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	vendor := createVendor(t, db, "vendor@example.com")

	// Interleave categories so matching rows land on every raw page.
	for i := 0; i < 36; i++ {
		category := "Electronics"
		if i%3 == 2 {
			category = "Kitchen"
		}
		_, err := catalog.CreateProduct(ctx, db, catalog.CreateProductRequest{
			VendorID: vendor.ID,
			Name:     fmt.Sprintf("Gadget %02d", i),
			Category: category,
			Price:    decimal.NewFromInt(int64(10 + i)),
			InStock:  true,
		})
		if err != nil {
			t.Fatalf("Create product %d: %v", i, err)
		}
	}

	filter := catalog.Filter{Category: "Electronics"}

	first, err := catalog.ListProducts(ctx, db, filter, catalog.SortPriceLow, 1, 20)
	if err != nil {
		t.Fatalf("List first page: %v", err)
	}
	if first.Total != 24 {
		t.Errorf("Expected filtered total 24, got %d", first.Total)
	}
	if first.TotalPages != 2 {
		t.Errorf("Expected 2 pages, got %d", first.TotalPages)
	}

	second, err := catalog.ListProducts(ctx, db, filter, catalog.SortPriceLow, 2, 20)
	if err != nil {
		t.Fatalf("List second page: %v", err)
	}

	var all []models.Product
	for _, page := range []*catalog.OffsetPage{first, second} {
		items, ok := page.Items.([]models.Product)
		if !ok {
			t.Fatalf("Expected []models.Product items, got %T", page.Items)
		}
		all = append(all, items...)
	}
	if len(all) != 24 {
		t.Fatalf("Expected 24 products across pages, got %d", len(all))
	}

	seen := make(map[string]bool)
	for i, product := range all {
		if product.Category != "Electronics" {
			t.Errorf("Product %s has category %s, expected Electronics", product.ID, product.Category)
		}
		if seen[product.ID] {
			t.Errorf("Product %s returned on more than one page", product.ID)
		}
		seen[product.ID] = true
		if i > 0 && all[i].Price.LessThan(all[i-1].Price) {
			t.Errorf("Prices out of order at index %d: %s after %s", i, all[i].Price, all[i-1].Price)
		}
	}
}
