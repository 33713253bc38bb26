package shop

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerDetail is the GET /customers/{id} view: the customer with order
// history nested. Orders carry products but not the customer back-reference.
type CustomerDetail struct {
	Customer
	Orders []Order `json:"orders"`
}

// Account password hash never leaves the store layer; responses carry
// username and the owning customer only.
type Account struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Order struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	Date             Date      `json:"date"`
	Status           Status    `json:"status"` // see status.go
	ExpectedDelivery *Date     `json:"expected_delivery_date,omitempty"`
	Products         []Product `json:"products,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderTracking is the GET /orders/{id}/status view: no products.
type OrderTracking struct {
	ID               string `json:"id"`
	Date             Date   `json:"date"`
	Status           Status `json:"status"`
	ExpectedDelivery *Date  `json:"expected_delivery_date,omitempty"`
}

// Date is a calendar day, serialized as YYYY-MM-DD both over the wire and
// into the store's date columns.
type Date struct{ time.Time }

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) { return d.Time, nil }
