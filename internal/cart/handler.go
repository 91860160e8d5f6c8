// internal/cart/handler.go
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"bookstall/internal/catalog"
	"bookstall/internal/pricing"
)

// Catalog resolves identities to catalog items.
type Catalog interface {
	Lookup(id string) (catalog.Item, error)
}

type LineView struct {
	Line
	LineTotal        float64 `json:"line_total"`
	UnitPriceDisplay string  `json:"unit_price_display"`
	LineTotalDisplay string  `json:"line_total_display"`
}

type View struct {
	Lines        []LineView `json:"lines"`
	Count        int        `json:"count"`
	Total        float64    `json:"total"`
	TotalDisplay string     `json:"total_display"`
}

// NewView renders the cart contents for the widget.
func NewView(lines []Line) View {
	view := View{Lines: make([]LineView, 0, len(lines))}
	for _, line := range lines {
		view.Lines = append(view.Lines, LineView{
			Line:             line,
			LineTotal:        line.LineTotal(),
			UnitPriceDisplay: pricing.Display(line.UnitPrice),
			LineTotalDisplay: pricing.Display(line.LineTotal()),
		})
		view.Count += line.Quantity
		view.Total += line.LineTotal()
	}
	view.TotalDisplay = pricing.Display(view.Total)
	return view
}

type Handler struct {
	store   *Store
	catalog Catalog
}

func NewHandler(store *Store, catalog Catalog) *Handler {
	return &Handler{store: store, catalog: catalog}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/cart", h.HandleGet)
	r.Post("/cart/items/{id}", h.HandleAdd)
	r.Put("/cart/items/{id}", h.HandleSetQuantity)
	r.Delete("/cart/items/{id}", h.HandleRemove)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewView(h.store.Lines()))
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.catalog.Lookup(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if _, err := h.store.Add(item); err != nil {
		if errors.Is(err, ErrItemSold) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, NewView(h.store.Lines()))
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, found := h.store.SetQuantity(id, quantityFromJSON(req.Quantity)); !found {
		http.Error(w, "item not in cart", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, NewView(h.store.Lines()))
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	h.store.Remove(id)
	writeJSON(w, http.StatusOK, NewView(h.store.Lines()))
}

// quantityFromJSON accepts a number or a string, as typed into the quantity box.
func quantityFromJSON(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n != float64(int(n)) {
			return 1
		}
		return clampQuantity(int(n))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseQuantity(s)
	}
	return 1
}

// itemID returns the decoded identity. chi matches on RawPath when the request
// carried escapes the plain path cannot represent (such as %2F), and only then
// is the parameter still escaped.
func itemID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	var err error
	if r.URL.RawPath != "" {
		id, err = url.PathUnescape(id)
	}
	if err != nil || id == "" {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
