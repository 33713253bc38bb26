package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/redisx"
	"github.com/storekit/ecomm-api/internal/shop"
)

type ProductStore interface {
	Create(ctx context.Context, in shop.ProductInput) (shop.Product, error)
	Get(ctx context.Context, id string) (shop.Product, error)
	List(ctx context.Context) ([]shop.Product, error)
	Update(ctx context.Context, id string, in shop.ProductInput) (shop.Product, error)
	Delete(ctx context.Context, id string) error
	SetStock(ctx context.Context, id string, stock int) (shop.Product, error)
	Restock(ctx context.Context, threshold, amount int) ([]shop.Product, error)
}

// SweepLocker serializes the restock sweep; satisfied by redisx.Locker.
type SweepLocker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) error
}

type ProductsHandler struct {
	Store    ProductStore
	Lock     SweepLocker
	Producer Publisher
	Service  string
	Log      *zap.Logger
}

const (
	defaultRestockThreshold = 10
	defaultRestockAmount    = 50
)

type stockReq struct {
	Stock *int `json:"stock"`
}

type restockReq struct {
	Threshold     *int `json:"threshold"`
	RestockAmount *int `json:"restock_amount"`
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Post("/products", h.create)
	r.Get("/products", h.list)
	r.Post("/products/restock", h.restock)
	r.Get("/products/{id}", h.get)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
	r.Put("/products/{id}/stock", h.setStock)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in shop.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Store.List(ctx)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var in shop.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func (h *ProductsHandler) setStock(w http.ResponseWriter, r *http.Request) {
	var req stockReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Stock == nil {
		writeError(w, h.Log, shop.Invalid("stock", "stock is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.SetStock(ctx, chi.URLParam(r, "id"), *req.Stock)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// restock bumps every product below the threshold in one sweep. The redis
// lock keeps two concurrent sweeps from double-applying the increment.
func (h *ProductsHandler) restock(w http.ResponseWriter, r *http.Request) {
	var req restockReq
	if !decodeJSON(w, r, &req) {
		return
	}
	threshold, amount := defaultRestockThreshold, defaultRestockAmount
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if req.RestockAmount != nil {
		amount = *req.RestockAmount
	}
	if amount < 0 {
		writeError(w, h.Log, shop.Invalid("restock_amount", "restock_amount must not be negative"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token := uuid.NewString()
	if h.Lock != nil {
		ok, err := h.Lock.TryLock(ctx, redisx.KeyRestockLock, token, redisx.TTLRestockLock)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "restock already in progress"})
			return
		}
		defer func() {
			if err := h.Lock.Unlock(ctx, redisx.KeyRestockLock, token); err != nil {
				h.Log.Warn("restock unlock failed", zap.Error(err))
			}
		}()
	}

	ps, err := h.Store.Restock(ctx, threshold, amount)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	restocked := make([]shop.RestockedProduct, 0, len(ps))
	for _, p := range ps {
		restocked = append(restocked, shop.RestockedProduct{ProductID: p.ID, Stock: p.Stock})
	}
	publishEvent(h.Producer, h.Service, shop.EventProductsRestocked,
		middleware.GetReqID(r.Context()), token,
		shop.ProductsRestockedPayload{Threshold: threshold, RestockAmount: amount, Products: restocked})

	writeJSON(w, http.StatusOK, map[string]any{"restocked": len(ps), "products": ps})
}
