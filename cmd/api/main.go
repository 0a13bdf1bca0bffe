package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/auth"
	"github.com/safar/shophub/internal/catalog"
	"github.com/safar/shophub/internal/config"
	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/orders"
	"github.com/safar/shophub/internal/slot"
	"github.com/safar/shophub/internal/store"
	"github.com/safar/shophub/internal/users"
)

type api struct {
	db        *sql.DB
	stores    *store.Stores
	sessions  *auth.Sessions
	payDelay  time.Duration
	uploadDir string
	uploadMax int64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	slots, err := slot.NewRedis(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Connect to redis: %v", err)
	}
	defer slots.Close()

	log.Printf("Connected to database and redis successfully")

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("Create upload directory: %v", err)
	}

	a := &api{
		db:        db,
		stores:    store.New(slots),
		sessions:  auth.NewSessions(users.NewRegistry(db), slots),
		payDelay:  cfg.Checkout.PaymentDelay,
		uploadDir: cfg.Upload.Dir,
		uploadMax: cfg.Upload.MaxBytes,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/sign-in", a.handleSignIn())
	mux.HandleFunc("/auth/sign-up", a.handleSignUp())
	mux.HandleFunc("/auth/sign-out", a.handleSignOut())
	mux.HandleFunc("/auth/upload-file", a.handleUploadFile())
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))
	mux.HandleFunc("/users/details", a.handleUserDetails())
	mux.HandleFunc("/shop/categories", a.handleCategories())
	mux.HandleFunc("/shop/products", a.handleProducts())
	mux.HandleFunc("/shop/products/", a.handleProductByID())
	mux.HandleFunc("/cart", a.handleCart())
	mux.HandleFunc("/cart/items", a.handleCartItems())
	mux.HandleFunc("/cart/items/", a.handleCartItemByID())
	mux.HandleFunc("/wishlist", a.handleWishlist())
	mux.HandleFunc("/wishlist/items/", a.handleWishlistItemByID())
	mux.HandleFunc("/recently-viewed", a.handleRecentlyViewed())
	mux.HandleFunc("/checkout", a.handleCheckout())
	mux.HandleFunc("/orders", a.handleOrders())
	mux.HandleFunc("/orders/", a.handleOrderByID())
	mux.HandleFunc("/vendor/products", a.handleVendorProducts())
	mux.HandleFunc("/vendor/orders/", a.handleVendorOrderByID())

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func (a *api) handleSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		session, err := a.sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		respondData(w, http.StatusOK, session)
	}
}

func (a *api) handleSignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req struct {
			Email    string      `json:"email"`
			Password string      `json:"password"`
			Name     string      `json:"name"`
			Role     models.Role `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" || req.Name == "" {
			respondError(w, http.StatusBadRequest, "Email, password and name are required")
			return
		}
		if !req.Role.Valid() {
			respondError(w, http.StatusBadRequest, "Role must be customer or vendor")
			return
		}

		session, err := a.sessions.Signup(r.Context(), req.Email, req.Password, req.Name, req.Role)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		respondData(w, http.StatusCreated, session)
	}
}

func (a *api) handleSignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		a.sessions.Logout(r.Context(), bearerToken(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

var uploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// handleUploadFile stores a multipart image under a fresh name and returns
// the URL it is served from. Vendors use it for product images.
func (a *api) handleUploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, a.uploadMax)
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "A file field is required")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !uploadExtensions[ext] {
			respondError(w, http.StatusBadRequest, "Unsupported file type")
			return
		}

		name := uuid.NewString() + ext
		dst, err := os.Create(filepath.Join(a.uploadDir, name))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Could not store file")
			return
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			os.Remove(dst.Name())
			respondError(w, http.StatusBadRequest, "Could not read file")
			return
		}

		respondData(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
	}
}

func (a *api) handleUserDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		respondData(w, http.StatusOK, user)
	}
}

func (a *api) handleCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalog.ListCategories(r.Context(), a.db)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if categories == nil {
			categories = []string{}
		}

		respondData(w, http.StatusOK, categories)
	}
}

func (a *api) handleProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			user := a.requireRole(w, r, models.RoleVendor)
			if user == nil {
				return
			}

			req, msg := decodeProductRequest(r)
			if msg != "" {
				respondError(w, http.StatusBadRequest, msg)
				return
			}

			product, err := catalog.CreateProduct(ctx, a.db, catalog.CreateProductRequest{
				VendorID:      user.ID,
				Name:          req.Name,
				Brand:         req.Brand,
				Description:   req.Description,
				Category:      req.Category,
				Image:         req.Image,
				Price:         req.price,
				OriginalPrice: req.originalPrice,
				InStock:       req.InStock,
				Features:      req.Features,
			})
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondData(w, http.StatusCreated, product)

		case http.MethodGet:
			page, pageSize := pagination(r)
			result, err := catalog.ListProducts(ctx, a.db,
				filterFromQuery(r), catalog.SortKey(r.URL.Query().Get("sort")), page, pageSize)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondData(w, http.StatusOK, result)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleProductByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimPrefix(r.URL.Path, "/shop/products/")
		if id == "" {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			product, err := catalog.GetProduct(ctx, a.db, id)
			if err != nil {
				respondError(w, statusForError(err), err.Error())
				return
			}

			// A logged-in view lands in the shopper's recently-viewed list.
			if user := a.currentUser(r); user != nil {
				a.stores.RecentlyViewed(ctx, user.ID).Add(ctx, *product)
			}

			respondData(w, http.StatusOK, product)

		case http.MethodPut:
			user := a.requireRole(w, r, models.RoleVendor)
			if user == nil {
				return
			}

			req, msg := decodeProductRequest(r)
			if msg != "" {
				respondError(w, http.StatusBadRequest, msg)
				return
			}

			product, err := catalog.UpdateProduct(ctx, a.db, id, user.ID, catalog.UpdateProductRequest{
				Name:          req.Name,
				Brand:         req.Brand,
				Description:   req.Description,
				Category:      req.Category,
				Image:         req.Image,
				Price:         req.price,
				OriginalPrice: req.originalPrice,
				InStock:       req.InStock,
				Features:      req.Features,
			})
			if err != nil {
				respondError(w, statusForError(err), err.Error())
				return
			}

			respondData(w, http.StatusOK, product)

		case http.MethodDelete:
			user := a.requireRole(w, r, models.RoleVendor)
			if user == nil {
				return
			}

			if err := catalog.DeleteProduct(ctx, a.db, id, user.ID); err != nil {
				respondError(w, statusForError(err), err.Error())
				return
			}

			w.WriteHeader(http.StatusNoContent)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		cart := a.stores.Cart(ctx, user.ID)

		switch r.Method {
		case http.MethodGet:
			respondData(w, http.StatusOK, cartPayload(cart))

		case http.MethodDelete:
			cart.Clear(ctx)
			respondData(w, http.StatusOK, cartPayload(cart))

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleCartItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req struct {
			ProductID string `json:"product_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		product, err := catalog.GetProduct(ctx, a.db, req.ProductID)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		cart := a.stores.Cart(ctx, user.ID)
		cart.Add(ctx, *product)

		respondData(w, http.StatusOK, cartPayload(cart))
	}
}

func (a *api) handleCartItemByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		productID := strings.TrimPrefix(r.URL.Path, "/cart/items/")
		if productID == "" {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		cart := a.stores.Cart(ctx, user.ID)

		switch r.Method {
		case http.MethodPatch:
			var req struct {
				Quantity int `json:"quantity"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			cart.SetQuantity(ctx, productID, req.Quantity)
			respondData(w, http.StatusOK, cartPayload(cart))

		case http.MethodDelete:
			cart.Remove(ctx, productID)
			respondData(w, http.StatusOK, cartPayload(cart))

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		wishlist := a.stores.Wishlist(ctx, user.ID)

		switch r.Method {
		case http.MethodGet:
			respondData(w, http.StatusOK, wishlist.Products())

		case http.MethodPost:
			var req struct {
				ProductID string `json:"product_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			product, err := catalog.GetProduct(ctx, a.db, req.ProductID)
			if err != nil {
				respondError(w, statusForError(err), err.Error())
				return
			}

			wishlist.Add(ctx, *product)
			respondData(w, http.StatusOK, wishlist.Products())

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleWishlistItemByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		if r.Method != http.MethodDelete {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		productID := strings.TrimPrefix(r.URL.Path, "/wishlist/items/")
		if productID == "" {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		wishlist := a.stores.Wishlist(ctx, user.ID)
		wishlist.Remove(ctx, productID)

		respondData(w, http.StatusOK, wishlist.Products())
	}
}

func (a *api) handleRecentlyViewed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		recent := a.stores.RecentlyViewed(ctx, user.ID)

		switch r.Method {
		case http.MethodGet:
			respondData(w, http.StatusOK, recent.Products())

		case http.MethodDelete:
			recent.Clear(ctx)
			respondData(w, http.StatusOK, recent.Products())

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (a *api) handleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		cart := a.stores.Cart(ctx, user.ID)
		lines := cart.Lines()
		if len(lines) == 0 {
			respondError(w, http.StatusBadRequest, "Cart is empty")
			return
		}

		order, err := orders.Checkout(ctx, a.db, user.ID, lines)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		// Simulated payment provider round trip, then confirmation.
		time.Sleep(a.payDelay)
		confirmed, err := orders.UpdateStatus(ctx, a.db, order.ID, models.OrderStatusConfirmed)
		if err != nil {
			log.Printf("Confirming order %s: %v", order.ID, err)
			confirmed = order
		}

		// Clearing the cart is an independent step with no rollback tie to
		// the order.
		cart.Clear(ctx)

		respondData(w, http.StatusCreated, confirmed)
	}
}

func (a *api) handleOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		result, err := orders.ListOrdersCursor(ctx, a.db, user.ID, r.URL.Query().Get("cursor"), limit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondData(w, http.StatusOK, result)
	}
}

func (a *api) handleOrderByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireUser(w, r)
		if user == nil {
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/orders/")
		order, err := orders.GetOrder(ctx, a.db, id)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		if order.UserID != user.ID && user.Role != models.RoleVendor {
			respondError(w, http.StatusForbidden, "Access denied")
			return
		}

		respondData(w, http.StatusOK, order)
	}
}

func (a *api) handleVendorProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireRole(w, r, models.RoleVendor)
		if user == nil {
			return
		}

		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		page, pageSize := pagination(r)
		result, err := catalog.ListVendorProducts(ctx, a.db, user.ID, page, pageSize)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondData(w, http.StatusOK, result)
	}
}

func (a *api) handleVendorOrderByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := a.requireRole(w, r, models.RoleVendor)
		if user == nil {
			return
		}

		if r.Method != http.MethodPatch {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/vendor/orders/")
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		order, err := orders.UpdateStatusForVendor(ctx, a.db, id, user.ID, req.Status)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}

		respondData(w, http.StatusOK, order)
	}
}

// currentUser resolves the bearer token, or nil for anonymous callers.
func (a *api) currentUser(r *http.Request) *models.User {
	user, err := a.sessions.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		return nil
	}
	return user
}

func (a *api) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	return a.requireRole(w, r, models.RoleCustomer, models.RoleVendor)
}

func (a *api) requireRole(w http.ResponseWriter, r *http.Request, allowed ...models.Role) *models.User {
	user := a.currentUser(r)
	switch auth.CheckAccess(user, allowed) {
	case auth.DecisionUnauthenticated:
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return nil
	case auth.DecisionForbidden:
		respondError(w, http.StatusForbidden, "Access denied")
		return nil
	}
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

type productRequest struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Image         string   `json:"image"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	InStock       bool     `json:"in_stock"`
	Features      []string `json:"features"`

	price         decimal.Decimal
	originalPrice *decimal.Decimal
}

func decodeProductRequest(r *http.Request) (*productRequest, string) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "Invalid request body"
	}
	if req.Name == "" || req.Category == "" {
		return nil, "Name and category are required"
	}
	if req.Price <= 0 {
		return nil, "Price must be positive"
	}

	req.price = decimal.NewFromFloat(req.Price)
	if req.OriginalPrice != nil {
		original := decimal.NewFromFloat(*req.OriginalPrice)
		req.originalPrice = &original
	}
	return &req, ""
}

func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	filter := catalog.Filter{Category: q.Get("category")}
	if min, err := decimal.NewFromString(q.Get("price_min")); err == nil {
		filter.PriceMin = min
	}
	if max, err := decimal.NewFromString(q.Get("price_max")); err == nil {
		filter.PriceMax = max
	}
	if brands := q.Get("brands"); brands != "" {
		filter.Brands = strings.Split(brands, ",")
	}
	if rating, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
		filter.MinRating = rating
	}
	filter.InStockOnly = q.Get("in_stock") == "true"

	return filter
}

func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func cartPayload(cart *store.Cart) map[string]interface{} {
	lines, total, itemCount := cart.State()
	return map[string]interface{}{
		"items":      lines,
		"total":      total,
		"item_count": itemCount,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, database.ErrProductUnavailable),
		errors.Is(err, database.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
