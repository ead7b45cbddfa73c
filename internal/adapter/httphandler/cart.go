package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

type CartHandler struct {
	cart port.CartAdder
}

func RegisterCart(r chi.Router, cart port.CartAdder) {
	h := CartHandler{cart}
	r.Get("/v1/cart/new", h.AddView)
	r.Post("/v1/cart", h.Add)
}

func (h CartHandler) AddView(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddView"
	log := slog.With("op", op)

	productID := r.URL.Query().Get("product_id")

	v, err := h.cart.CartAddView(r.Context(), productID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, CartAddView{
		ProductID:   v.ProductID,
		ProductName: v.ProductName,
		Price:       v.Price,
	})
}

func (h CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Add"
	log := slog.With("op", op)

	username := Username(r)
	if username == "" {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	var form CartItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.cart.AddToCart(r.Context(), domain.CartItem{
		UserID:    username,
		ProductID: form.ProductID,
		Quantity:  form.Quantity,
	})
	if err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)

	log.Info("cart item added",
		"userID", username,
		"productID", form.ProductID,
		"quantity", form.Quantity,
	)
}

type PopularityHandler struct {
	popularity port.PopularityReader
}

func RegisterPopularity(r chi.Router, popularity port.PopularityReader) {
	h := PopularityHandler{popularity}
	r.Get("/v1/popularity/{productID}", h.Get)
}

func (h PopularityHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "PopularityHandler.Get"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")

	n, err := h.popularity.CartAdds(productID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, Popularity{
		ProductID: productID,
		CartAdds:  n,
	})
}
