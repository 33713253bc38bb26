package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepo struct{ DB *pgxpool.Pool }

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (in CustomerInput) Validate() error {
	v := NewValidationError()
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	return v.OrNil()
}

func (r *CustomerRepo) Create(ctx context.Context, in CustomerInput) (Customer, error) {
	c := Customer{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Phone: in.Phone}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO customers(id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Phone,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Get returns the customer with order history nested, products included.
func (r *CustomerRepo) Get(ctx context.Context, id string) (CustomerDetail, error) {
	if !validID(id) {
		return CustomerDetail{}, NotFound("customer", id)
	}
	var d CustomerDetail
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CustomerDetail{}, NotFound("customer", id)
	}
	if err != nil {
		return CustomerDetail{}, err
	}
	orders, err := customerOrders(ctx, r.DB, id)
	if err != nil {
		return CustomerDetail{}, err
	}
	d.Orders = orders
	return d, nil
}

// Update is a full-record overwrite of name/email/phone.
func (r *CustomerRepo) Update(ctx context.Context, id string, in CustomerInput) (Customer, error) {
	if !validID(id) {
		return Customer{}, NotFound("customer", id)
	}
	c := Customer{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone}
	err := r.DB.QueryRow(ctx, `
		UPDATE customers SET name=$2, email=$3, phone=$4, updated_at=now()
		WHERE id=$1
		RETURNING created_at, updated_at`,
		id, in.Name, in.Email, in.Phone,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, NotFound("customer", id)
	}
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Delete removes the customer; orders and the account cascade in the store.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("customer", id)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFound("customer", id)
	}
	return nil
}

func (r *CustomerRepo) Orders(ctx context.Context, id string) ([]Order, error) {
	if !validID(id) {
		return nil, NotFound("customer", id)
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFound("customer", id)
	}
	return customerOrders(ctx, r.DB, id)
}

func customerOrders(ctx context.Context, db *pgxpool.Pool, customerID string) ([]Order, error) {
	rows, err := db.Query(ctx, `
		SELECT id, customer_id, order_date, status, expected_delivery_date, created_at, updated_at
		FROM orders WHERE customer_id=$1 ORDER BY order_date, id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Date, &o.Status, &o.ExpectedDelivery, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = i
	}
	prows, err := db.Query(ctx, `
		SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at, p.updated_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, p.name`, ids)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var orderID string
		var p Product
		if err := prows.Scan(&orderID, &p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		orders[byID[orderID]].Products = append(orders[byID[orderID]].Products, p)
	}
	return orders, prows.Err()
}
