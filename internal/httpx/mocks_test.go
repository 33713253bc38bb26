package httpx

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/storekit/ecomm-api/internal/shop"
)

type mockCustomerStore struct{ mock.Mock }

func (m *mockCustomerStore) Create(ctx context.Context, in shop.CustomerInput) (shop.Customer, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shop.Customer), args.Error(1)
}

func (m *mockCustomerStore) Get(ctx context.Context, id string) (shop.CustomerDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.CustomerDetail), args.Error(1)
}

func (m *mockCustomerStore) Update(ctx context.Context, id string, in shop.CustomerInput) (shop.Customer, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(shop.Customer), args.Error(1)
}

func (m *mockCustomerStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCustomerStore) Orders(ctx context.Context, id string) ([]shop.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Order), args.Error(1)
}

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Create(ctx context.Context, in shop.AccountInput) (shop.Account, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shop.Account), args.Error(1)
}

func (m *mockAccountStore) Get(ctx context.Context, id string) (shop.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.Account), args.Error(1)
}

func (m *mockAccountStore) Update(ctx context.Context, id string, in shop.AccountUpdate) (shop.Account, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(shop.Account), args.Error(1)
}

func (m *mockAccountStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Create(ctx context.Context, in shop.ProductInput) (shop.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shop.Product), args.Error(1)
}

func (m *mockProductStore) Get(ctx context.Context, id string) (shop.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.Product), args.Error(1)
}

func (m *mockProductStore) List(ctx context.Context) ([]shop.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Product), args.Error(1)
}

func (m *mockProductStore) Update(ctx context.Context, id string, in shop.ProductInput) (shop.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(shop.Product), args.Error(1)
}

func (m *mockProductStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductStore) SetStock(ctx context.Context, id string, stock int) (shop.Product, error) {
	args := m.Called(ctx, id, stock)
	return args.Get(0).(shop.Product), args.Error(1)
}

func (m *mockProductStore) Restock(ctx context.Context, threshold, amount int) ([]shop.Product, error) {
	args := m.Called(ctx, threshold, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Product), args.Error(1)
}

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Place(ctx context.Context, in shop.OrderInput) (shop.Order, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shop.Order), args.Error(1)
}

func (m *mockOrderStore) Get(ctx context.Context, id string) (shop.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.Order), args.Error(1)
}

func (m *mockOrderStore) Track(ctx context.Context, id string) (shop.OrderTracking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.OrderTracking), args.Error(1)
}

func (m *mockOrderStore) Cancel(ctx context.Context, id string) (shop.Order, shop.Status, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.Order), args.Get(1).(shop.Status), args.Error(2)
}

func (m *mockOrderStore) Total(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	m.Called(key, value, headers)
}

type mockLocker struct{ mock.Mock }

func (m *mockLocker) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, token, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockLocker) Unlock(ctx context.Context, key, token string) error {
	return m.Called(ctx, key, token).Error(0)
}
