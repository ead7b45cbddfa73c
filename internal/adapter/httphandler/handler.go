package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

type ProductsHandler struct {
	reader   port.CatalogReader
	writer   port.CatalogWriter
	views    port.ViewRecorder
	comments port.CommentAppender
}

func RegisterProducts(
	r chi.Router,
	reader port.CatalogReader,
	writer port.CatalogWriter,
	views port.ViewRecorder,
	comments port.CommentAppender,
) {
	h := ProductsHandler{reader, writer, views, comments}
	r.Get("/v1/products", h.List)
	r.Get("/v1/products/category/{category}", h.ListByCategory)
	r.Get("/v1/products/{productID}", h.Details)
	r.Post("/v1/products", h.Create)
	r.Put("/v1/products/{productID}", h.Edit)
	r.Delete("/v1/products/{productID}", h.Delete)
	r.Post("/v1/products/{productID}/comments", h.AddComment)
	// legacy storefront route, mutates on GET
	r.Get("/v1/products/{productID}/comments", h.AddCommentByQuery)
}

func (h ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.List"
	log := slog.With("op", op)

	order := domain.SortOrder(r.URL.Query().Get("sort_order"))
	query := r.URL.Query().Get("query")

	ps, err := h.reader.ListProducts(r.Context(), order, query)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK,
		toProductListView(ps, domain.NextSortOrder(order)))
}

func (h ProductsHandler) ListByCategory(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.ListByCategory"
	log := slog.With("op", op)

	category := chi.URLParam(r, "category")

	ps, err := h.reader.ListByCategory(r.Context(), category)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductListView(ps, ""))
}

func (h ProductsHandler) Details(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Details"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")

	p, err := h.reader.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	if username := Username(r); username != "" {
		h.views.RecordProductView(r.Context(), username, p)
	}

	writeJSON(w, log, http.StatusOK, toProductView(p))
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Create"
	log := slog.With("op", op)

	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if errs := form.validate(); len(errs) != 0 {
		writeJSON(w, log, http.StatusUnprocessableEntity,
			ValidationErrors{errs})
		return
	}

	p, err := h.writer.CreateProduct(r.Context(), form.toDraft())
	if err != nil {
		writeError(w, log, err)
		return
	}

	w.Header().Set("Location", "/v1/products/"+p.ProductID)
	writeJSON(w, log, http.StatusCreated, toProductView(p))

	log.Info("product created", "productID", p.ProductID)
}

func (h ProductsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Edit"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")

	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if form.ProductID != "" && form.ProductID != productID {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	if errs := form.validate(); len(errs) != 0 {
		writeJSON(w, log, http.StatusUnprocessableEntity,
			ValidationErrors{errs})
		return
	}

	p := form.toDraft().Apply(domain.Product{
		ProductID: productID,
		Version:   form.Version,
	})

	p, err := h.writer.UpdateProduct(r.Context(), p)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductView(p))

	log.Info("product updated", "productID", p.ProductID)
}

func (h ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Delete"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")

	if err := h.writer.DeleteProduct(r.Context(), productID); err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)

	log.Info("product deleted", "productID", productID)
}

func (h ProductsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.AddComment"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")

	var form CommentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.comments.AddComment(r.Context(), productID, form.Comment)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductView(p))
}

func (h ProductsHandler) AddCommentByQuery(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.AddCommentByQuery"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")
	comment := r.URL.Query().Get("comment")

	p, err := h.comments.AddComment(r.Context(), productID, comment)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductView(p))
}

func writeJSON(
	w http.ResponseWriter, log *slog.Logger, status int, v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, "concurrent modification", http.StatusConflict)
		log.Warn("write conflict", "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected failure", "err", err)
	}
}
