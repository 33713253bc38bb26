package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/shop"
)

type OrderStore interface {
	Place(ctx context.Context, in shop.OrderInput) (shop.Order, error)
	Get(ctx context.Context, id string) (shop.Order, error)
	Track(ctx context.Context, id string) (shop.OrderTracking, error)
	Cancel(ctx context.Context, id string) (shop.Order, shop.Status, error)
	Total(ctx context.Context, id string) (decimal.Decimal, error)
}

type OrdersHandler struct {
	Store    OrderStore
	Placed   Publisher
	Canceled Publisher
	Service  string
	Log      *zap.Logger
}

type totalResp struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.place)
	r.Get("/orders/{id}", h.get)
	r.Get("/orders/{id}/status", h.track)
	r.Put("/orders/{id}/cancel", h.cancel)
	r.Get("/orders/{id}/total", h.total)
}

func (h *OrdersHandler) place(w http.ResponseWriter, r *http.Request) {
	var in shop.OrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.Place(ctx, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	total := decimal.Zero
	ids := make([]string, 0, len(o.Products))
	for _, p := range o.Products {
		total = total.Add(p.Price)
		ids = append(ids, p.ID)
	}
	publishEvent(h.Placed, h.Service, shop.EventOrderPlaced,
		middleware.GetReqID(r.Context()), o.ID,
		shop.OrderPlacedPayload{OrderID: o.ID, CustomerID: o.CustomerID, ProductIDs: ids, Total: total})

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) track(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.Store.Track(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// cancel is the one exposed transition: rejected with a 400 once the order
// has shipped or completed, the stored status untouched. Re-canceling a
// canceled order succeeds without publishing a duplicate event.
func (h *OrdersHandler) cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, from, err := h.Store.Cancel(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	if from != shop.StatusCanceled {
		publishEvent(h.Canceled, h.Service, shop.EventOrderCanceled,
			middleware.GetReqID(r.Context()), o.ID,
			shop.OrderCanceledPayload{OrderID: o.ID, CustomerID: o.CustomerID, FromStatus: from})
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) total(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	total, err := h.Store.Total(ctx, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, totalResp{OrderID: id, Total: total})
}
