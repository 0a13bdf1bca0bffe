package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
)

const productColumns = `id, vendor_id, name, brand, description, category, image,
	price, original_price, rating, reviews, in_stock, features,
	created_at, updated_at, version`

type CreateProductRequest struct {
	VendorID      string
	Name          string
	Brand         string
	Description   string
	Category      string
	Image         string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	InStock       bool
	Features      []string
}

func CreateProduct(ctx context.Context, db *sql.DB, req CreateProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (id, vendor_id, name, brand, description, category, image,
			price, original_price, rating, reviews, in_stock, features,
			created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, $10, $11, NOW(), NOW(), 1)
		RETURNING ` + productColumns

	row := db.QueryRowContext(ctx, query,
		uuid.NewString(),
		req.VendorID,
		req.Name,
		req.Brand,
		req.Description,
		req.Category,
		req.Image,
		req.Price,
		nullDecimal(req.OriginalPrice),
		req.InStock,
		pq.Array(req.Features),
	)

	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func GetProduct(ctx context.Context, db *sql.DB, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

type UpdateProductRequest struct {
	Name          string
	Brand         string
	Description   string
	Category      string
	Image         string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	InStock       bool
	Features      []string
}

// UpdateProduct rewrites the vendor-editable fields. The vendor id scopes
// the update so a vendor cannot edit another vendor's product.
func UpdateProduct(ctx context.Context, db *sql.DB, id, vendorID string, req UpdateProductRequest) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, brand = $2, description = $3, category = $4, image = $5,
			price = $6, original_price = $7, in_stock = $8, features = $9,
			updated_at = NOW(), version = version + 1
		WHERE id = $10 AND vendor_id = $11
		RETURNING ` + productColumns

	row := db.QueryRowContext(ctx, query,
		req.Name,
		req.Brand,
		req.Description,
		req.Category,
		req.Image,
		req.Price,
		nullDecimal(req.OriginalPrice),
		req.InStock,
		pq.Array(req.Features),
		id,
		vendorID,
	)

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func DeleteProduct(ctx context.Context, db *sql.DB, id, vendorID string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

// ListProducts pages through the catalog with the filter and sort applied
// in SQL, so the derived totals always agree with the returned items.
func ListProducts(ctx context.Context, db *sql.DB, filter Filter, key SortKey, page, pageSize int) (*OffsetPage, error) {
	where, args := filterClauses(filter)
	return listProducts(ctx, db, where, orderBy(key), args, page, pageSize)
}

func ListVendorProducts(ctx context.Context, db *sql.DB, vendorID string, page, pageSize int) (*OffsetPage, error) {
	return listProducts(ctx, db, " WHERE vendor_id = $1", "created_at DESC", []interface{}{vendorID}, page, pageSize)
}

// filterClauses translates a Filter into a WHERE clause with positional
// arguments. The predicates mirror Apply: zero values are no constraint,
// except the lower price bound which is always applied.
func filterClauses(filter Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.PriceMin.IsPositive() {
		args = append(args, filter.PriceMin)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.PriceMax.IsPositive() {
		args = append(args, filter.PriceMax)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(filter.Brands) > 0 {
		args = append(args, pq.Array(filter.Brands))
		conditions = append(conditions, fmt.Sprintf("brand = ANY($%d)", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", len(args)))
	}
	if filter.InStockOnly {
		conditions = append(conditions, "in_stock")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderBy(key SortKey) string {
	switch key {
	case SortPriceLow:
		return "price ASC, id ASC"
	case SortPriceHigh:
		return "price DESC, id ASC"
	case SortRating:
		return "rating DESC, id ASC"
	case SortNewest:
		return "created_at DESC, id DESC"
	default:
		return "reviews DESC, id ASC"
	}
}

func listProducts(ctx context.Context, db *sql.DB, where, order string, filterArgs []interface{}, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, filterArgs...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	args := append(filterArgs, pageSize, offset)
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products`+where+`
		ORDER BY `+order+`
		LIMIT $%d OFFSET $%d`, len(filterArgs)+1, len(filterArgs)+2)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListCategories returns the distinct categories present in the catalog.
func ListCategories(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var originalPrice decimal.NullDecimal

	err := row.Scan(
		&product.ID,
		&product.VendorID,
		&product.Name,
		&product.Brand,
		&product.Description,
		&product.Category,
		&product.Image,
		&product.Price,
		&originalPrice,
		&product.Rating,
		&product.Reviews,
		&product.InStock,
		pq.Array(&product.Features),
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Version,
	)
	if err != nil {
		return nil, err
	}

	if originalPrice.Valid {
		product.OriginalPrice = &originalPrice.Decimal
	}

	return product, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
