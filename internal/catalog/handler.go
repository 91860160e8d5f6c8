// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bookstall/internal/pricing"
)

const (
	msgNoMatches    = "No books found matching criteria."
	msgLoadFailed   = "Error loading library."
	allCategoryText = "All Categories"
)

// ItemView is an item prepared for the widget grid.
type ItemView struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Category       string  `json:"category"`
	Condition      string  `json:"condition"`
	Year           string  `json:"year"`
	Price          string  `json:"price"`
	OriginalPrice  string  `json:"original_price,omitempty"`
	DiscountBadge  string  `json:"discount_badge,omitempty"`
	EffectivePrice float64 `json:"effective_price"`
	Sold           bool    `json:"sold"`
	Purchasable    bool    `json:"purchasable"`
	ImageURL       string  `json:"image_url"`
}

type BrowseResponse struct {
	State   State      `json:"state"`
	Message string     `json:"message,omitempty"`
	Items   []ItemView `json:"items"`
}

type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewItemView derives the display fields of an item.
func NewItemView(item Item) ItemView {
	view := ItemView{
		ID:             item.ID,
		Title:          item.Title,
		Author:         item.Author,
		Category:       item.DisplayCategory(),
		Condition:      item.Condition,
		Year:           item.Year,
		Price:          pricing.Display(item.ListedAmount),
		EffectivePrice: item.EffectivePrice(),
		Sold:           item.IsSold(),
		Purchasable:    !item.IsSold(),
		ImageURL:       item.CoverURL(),
	}
	if item.Discounted() {
		view.OriginalPrice = pricing.Display(item.ListedAmount)
		view.DiscountBadge = "-" + strconv.FormatFloat(item.DiscountPercent, 'f', -1, 64) + "%"
		view.Price = pricing.Display(item.EffectivePrice())
	}
	return view
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/catalog", h.HandleBrowse)
	r.Get("/catalog/categories", h.HandleCategories)
	r.Post("/catalog/refresh", h.HandleRefresh)
}

func (h *Handler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := h.service.Status()

	if status.State == StateFailed {
		writeJSON(w, http.StatusServiceUnavailable, BrowseResponse{
			State:   StateFailed,
			Message: msgLoadFailed,
			Items:   []ItemView{},
		})
		return
	}

	items := h.service.Browse(query.Get("q"), query.Get("category"))
	resp := BrowseResponse{
		State: status.State,
		Items: make([]ItemView, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, NewItemView(item))
	}
	if len(resp.Items) == 0 {
		resp.Message = msgNoMatches
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	options := []CategoryOption{{Value: AllCategories, Label: allCategoryText}}
	for _, c := range h.service.Categories() {
		options = append(options, CategoryOption{Value: c, Label: c})
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, BrowseResponse{
			State:   StateFailed,
			Message: msgLoadFailed,
			Items:   []ItemView{},
		})
		return
	}
	status := h.service.Status()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": status.State,
		"count": status.Count,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
