package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/shopfront/internal/adapter/api"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

// GET /products?search=&category=&sort= (200 OK, 400 Bad request, 503 Service unavailable)
// GET /categories (200 OK, 503 Service unavailable)

type CatalogHandler struct {
	products port.ProductsQuerier
}

func RegisterCatalog(mux *http.ServeMux, products port.ProductsQuerier) {
	h := CatalogHandler{products}
	mux.HandleFunc("GET /products", h.GetProducts)
	mux.HandleFunc("GET /categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := r.URL.Query()
	sort, err := domain.ParseSortKey(q.Get("sort"))
	if err != nil {
		http.Error(w, "unknown sort key", http.StatusBadRequest)
		log.Warn("invalid query", "err", err)
		return
	}

	c := domain.Criteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     sort,
	}

	ps, err := h.products.Products(r.Context(), c)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, api.ProductsFromDomain(ps))
	log.Debug("products listed", "nProducts", len(ps))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.products.Categories(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, cs)
}

// GET /cart Headers x-cart-id is opt (200 OK)
// POST /cart/add JSON {"productId", "variant"} (200 OK, 400 Bad request, 404 Not found, 409 Conflict, 413 Too large)
// POST /cart/remove JSON {"productId", "variant"} (200 OK, 400 Bad request)
// POST /cart/clear (200 OK)

type CartHandler struct {
	carts port.CartManager
}

func RegisterCart(mux *http.ServeMux, carts port.CartManager) {
	h := CartHandler{carts}
	mux.HandleFunc("GET /cart", h.GetCart)
	mux.HandleFunc("POST /cart/add", h.PostAdd)
	mux.HandleFunc("POST /cart/remove", h.PostRemove)
	mux.HandleFunc("POST /cart/clear", h.PostClear)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	s, err := h.carts.Cart(r.Context(), cartID(r))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, api.CartFromDomain(s))
}

func (h CartHandler) PostAdd(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostAdd"
	log := slog.With("op", op)

	var req api.AddToCartRequest
	if !decodeBody(w, r, log, &req) {
		return
	}
	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	id := cartID(r)
	s, err := h.carts.AddToCart(
		r.Context(), id, domain.ProductID(req.ProductID), req.Variant,
	)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, api.CartFromDomain(s))
	log.Info("added to cart", "cartID", id, "productID", req.ProductID)
}

func (h CartHandler) PostRemove(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostRemove"
	log := slog.With("op", op)

	var req api.RemoveFromCartRequest
	if !decodeBody(w, r, log, &req) {
		return
	}

	id := cartID(r)
	s, err := h.carts.RemoveFromCart(
		r.Context(), id, domain.ProductID(req.ProductID), req.Variant,
	)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, api.CartFromDomain(s))
	log.Info("removed from cart", "cartID", id, "productID", req.ProductID)
}

func (h CartHandler) PostClear(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostClear"
	log := slog.With("op", op)

	id := cartID(r)
	s, err := h.carts.ClearCart(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, api.CartFromDomain(s))
	log.Info("cart cleared", "cartID", id)
}
