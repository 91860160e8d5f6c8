// internal/checkout/handler.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	flow *Flow
}

func NewHandler(flow *Flow) *Handler {
	return &Handler{flow: flow}
}

type errorResponse struct {
	Error    string   `json:"error"`
	Checkout Snapshot `json:"checkout"`
}

type orderResponse struct {
	Outcome  Outcome  `json:"outcome"`
	Checkout Snapshot `json:"checkout"`
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/", h.HandleOpen)
		r.Delete("/", h.HandleCancel)
		r.Put("/country", h.HandleCountry)
		r.Put("/buyer", h.HandleBuyer)
		r.Get("/payment-link", h.HandlePaymentLink)
		r.Post("/order", h.HandlePlaceOrder)
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	snap, err := h.flow.Open()
	if err != nil {
		writeError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.Cancel())
}

func (h *Handler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.flow.ChangeCountry(req.Country)
	if err != nil {
		writeError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) HandleBuyer(w http.ResponseWriter, r *http.Request) {
	var buyer Buyer
	if err := json.NewDecoder(r.Body).Decode(&buyer); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.flow.UpdateBuyer(buyer)
	if err != nil {
		writeError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) HandlePaymentLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.flow.PaymentLink()
	if err != nil {
		writeError(w, err, h.flow.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

// HandlePlaceOrder accepts an optional buyer body so the widget can submit the
// form in one call.
func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var buyer Buyer
	if err := json.NewDecoder(r.Body).Decode(&buyer); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if buyer != (Buyer{}) {
		if snap, err := h.flow.UpdateBuyer(buyer); err != nil {
			writeError(w, err, snap)
			return
		}
	}

	// A buyer closing the page must not abort a submission already sent.
	outcome, err := h.flow.PlaceOrder(context.WithoutCancel(r.Context()))
	if err != nil && !errors.Is(err, ErrNotificationFailed) {
		writeError(w, err, h.flow.Snapshot())
		return
	}

	code := http.StatusOK
	if outcome == OutcomeFailed {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, orderResponse{Outcome: outcome, Checkout: h.flow.Snapshot()})
}

func writeError(w http.ResponseWriter, err error, snap Snapshot) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		code = http.StatusConflict
	case errors.Is(err, ErrValidationRejected):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotificationFailed):
		code = http.StatusBadGateway
	}
	writeJSON(w, code, errorResponse{Error: err.Error(), Checkout: snap})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
