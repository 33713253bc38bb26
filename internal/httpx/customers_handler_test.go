package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/shop"
)

func newCustomersRouter(store *mockCustomerStore) *chi.Mux {
	r := NewRouter(zap.NewNop())
	(&CustomersHandler{Store: store, Log: zap.NewNop()}).Register(r)
	return r
}

func TestCreateCustomer(t *testing.T) {
	store := new(mockCustomerStore)
	in := shop.CustomerInput{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0001"}
	store.On("Create", mock.Anything, in).Return(
		shop.Customer{ID: "c-1", Name: in.Name, Email: in.Email, Phone: in.Phone}, nil)

	w := doRequest(newCustomersRouter(store), http.MethodPost, "/customers",
		`{"name":"Ada Lovelace","email":"ada@example.com","phone":"555-0001"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got shop.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	store.AssertExpectations(t)
}

func TestCreateCustomerMissingName(t *testing.T) {
	store := new(mockCustomerStore)
	w := doRequest(newCustomersRouter(store), http.MethodPost, "/customers",
		`{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"name"`)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCustomerInvalidJSON(t *testing.T) {
	store := new(mockCustomerStore)
	w := doRequest(newCustomersRouter(store), http.MethodPost, "/customers", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCustomerNotFound(t *testing.T) {
	store := new(mockCustomerStore)
	store.On("Get", mock.Anything, "missing").Return(shop.CustomerDetail{}, shop.NotFound("customer", "missing"))

	w := doRequest(newCustomersRouter(store), http.MethodGet, "/customers/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCustomerNestsOrders(t *testing.T) {
	store := new(mockCustomerStore)
	d, _ := shop.ParseDate("2026-01-10")
	detail := shop.CustomerDetail{
		Customer: shop.Customer{ID: "c-1", Name: "Ada"},
		Orders: []shop.Order{{
			ID: "o-1", CustomerID: "c-1", Date: d, Status: shop.StatusPending,
			Products: []shop.Product{{ID: "p-1", Name: "Mug"}},
		}},
	}
	store.On("Get", mock.Anything, "c-1").Return(detail, nil)

	w := doRequest(newCustomersRouter(store), http.MethodGet, "/customers/c-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orders"`)
	assert.Contains(t, w.Body.String(), `"Mug"`)
}

func TestUpdateCustomerIdempotent(t *testing.T) {
	store := new(mockCustomerStore)
	in := shop.CustomerInput{Name: "Ada", Email: "ada@example.com"}
	store.On("Update", mock.Anything, "c-1", in).Return(
		shop.Customer{ID: "c-1", Name: "Ada", Email: "ada@example.com"}, nil).Twice()

	r := newCustomersRouter(store)
	body := `{"name":"Ada","email":"ada@example.com"}`
	first := doRequest(r, http.MethodPut, "/customers/c-1", body)
	second := doRequest(r, http.MethodPut, "/customers/c-1", body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	store.AssertExpectations(t)
}

func TestDeleteCustomer(t *testing.T) {
	store := new(mockCustomerStore)
	store.On("Delete", mock.Anything, "c-1").Return(nil)

	w := doRequest(newCustomersRouter(store), http.MethodDelete, "/customers/c-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestDeleteCustomerNotFound(t *testing.T) {
	store := new(mockCustomerStore)
	store.On("Delete", mock.Anything, "missing").Return(shop.NotFound("customer", "missing"))

	w := doRequest(newCustomersRouter(store), http.MethodDelete, "/customers/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerOrderHistory(t *testing.T) {
	store := new(mockCustomerStore)
	store.On("Orders", mock.Anything, "c-1").Return([]shop.Order{}, nil)

	w := doRequest(newCustomersRouter(store), http.MethodGet, "/customers/c-1/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCustomerOrderHistoryNotFound(t *testing.T) {
	store := new(mockCustomerStore)
	store.On("Orders", mock.Anything, "missing").Return(nil, shop.NotFound("customer", "missing"))

	w := doRequest(newCustomersRouter(store), http.MethodGet, "/customers/missing/orders", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
