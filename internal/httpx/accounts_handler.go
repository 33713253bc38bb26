package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/shop"
)

type AccountStore interface {
	Create(ctx context.Context, in shop.AccountInput) (shop.Account, error)
	Get(ctx context.Context, id string) (shop.Account, error)
	Update(ctx context.Context, id string, in shop.AccountUpdate) (shop.Account, error)
	Delete(ctx context.Context, id string) error
}

// Account responses never carry credentials; the password exists only as a
// bcrypt hash inside the store layer.
type AccountsHandler struct {
	Store AccountStore
	Log   *zap.Logger
}

func (h *AccountsHandler) Register(r *chi.Mux) {
	r.Post("/customer_accounts", h.create)
	r.Get("/customer_accounts/{id}", h.get)
	r.Put("/customer_accounts/{id}", h.update)
	r.Delete("/customer_accounts/{id}", h.delete)
}

func (h *AccountsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in shop.AccountInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := h.Store.Create(ctx, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AccountsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountsHandler) update(w http.ResponseWriter, r *http.Request) {
	var in shop.AccountUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := h.Store.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}
