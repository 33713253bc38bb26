package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ DB *pgxpool.Pool }

type OrderInput struct {
	CustomerID       string   `json:"customer_id"`
	ProductIDs       []string `json:"product_ids"`
	Date             Date     `json:"date"`
	ExpectedDelivery *Date    `json:"expected_delivery_date"`
}

func (in OrderInput) Validate() error {
	v := NewValidationError()
	if in.CustomerID == "" {
		v.Add("customer_id", "customer_id is required")
	}
	if len(in.ProductIDs) == 0 {
		v.Add("product_ids", "at least one product_id is required")
	}
	if in.Date.IsZero() {
		v.Add("date", "date is required (YYYY-MM-DD)")
	}
	return v.OrNil()
}

// Place creates the order and its product set in one transaction: resolve
// the customer, resolve every product (first missing one aborts with
// not-found and nothing is persisted), insert, commit.
func (r *OrderRepo) Place(ctx context.Context, in OrderInput) (Order, error) {
	if !validID(in.CustomerID) {
		return Order{}, NotFound("customer", in.CustomerID)
	}
	for _, id := range in.ProductIDs {
		if !validID(id) {
			return Order{}, NotFound("product", id)
		}
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`, in.CustomerID).Scan(&exists); err != nil {
		return Order{}, err
	}
	if !exists {
		return Order{}, NotFound("customer", in.CustomerID)
	}

	// duplicate ids collapse: the association is a set
	ids := make([]string, 0, len(in.ProductIDs))
	seen := map[string]bool{}
	for _, id := range in.ProductIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	rows, err := tx.Query(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return Order{}, err
	}
	found := map[string]Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return Order{}, err
		}
		found[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return Order{}, NotFound("product", id)
		}
	}

	o := Order{
		ID:               uuid.NewString(),
		CustomerID:       in.CustomerID,
		Date:             in.Date,
		Status:           StatusPending,
		ExpectedDelivery: in.ExpectedDelivery,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, customer_id, order_date, status, expected_delivery_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		o.ID, o.CustomerID, o.Date, o.Status, o.ExpectedDelivery,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_products(order_id, product_id)
			VALUES ($1, $2)`, o.ID, id); err != nil {
			return Order{}, err
		}
		o.Products = append(o.Products, found[id])
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (Order, error) {
	if !validID(id) {
		return Order{}, NotFound("order", id)
	}
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_id, order_date, status, expected_delivery_date, created_at, updated_at
		FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.Date, &o.Status, &o.ExpectedDelivery, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, NotFound("order", id)
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.name, p.price, p.stock, p.created_at, p.updated_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id=$1 ORDER BY p.name`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return Order{}, err
		}
		o.Products = append(o.Products, p)
	}
	return o, rows.Err()
}

// Track is the status view: id, date, status, expected delivery. No products.
func (r *OrderRepo) Track(ctx context.Context, id string) (OrderTracking, error) {
	if !validID(id) {
		return OrderTracking{}, NotFound("order", id)
	}
	var t OrderTracking
	err := r.DB.QueryRow(ctx, `
		SELECT id, order_date, status, expected_delivery_date
		FROM orders WHERE id=$1`, id,
	).Scan(&t.ID, &t.Date, &t.Status, &t.ExpectedDelivery)
	if errors.Is(err, pgx.ErrNoRows) {
		return OrderTracking{}, NotFound("order", id)
	}
	if err != nil {
		return OrderTracking{}, err
	}
	return t, nil
}

// Cancel locks the row, checks the transition gate, flips the status.
// A shipped or completed order rejects the cancel and stays untouched; an
// already canceled order is left as is and reported as success.
func (r *OrderRepo) Cancel(ctx context.Context, id string) (Order, Status, error) {
	if !validID(id) {
		return Order{}, "", NotFound("order", id)
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var o Order
	err = tx.QueryRow(ctx, `
		SELECT id, customer_id, order_date, status, expected_delivery_date, created_at, updated_at
		FROM orders WHERE id=$1 FOR UPDATE`, id,
	).Scan(&o.ID, &o.CustomerID, &o.Date, &o.Status, &o.ExpectedDelivery, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, "", NotFound("order", id)
	}
	if err != nil {
		return Order{}, "", err
	}

	from := o.Status
	if from == StatusCanceled {
		return o, from, nil
	}
	if !CanCancel(from) {
		return Order{}, from, Invalid("status", "order cannot be canceled once "+string(from))
	}

	err = tx.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now()
		WHERE id=$1 RETURNING updated_at`,
		id, StatusCanceled,
	).Scan(&o.UpdatedAt)
	if err != nil {
		return Order{}, from, err
	}
	o.Status = StatusCanceled

	if err := tx.Commit(ctx); err != nil {
		return Order{}, from, err
	}
	return o, from, nil
}

// Total sums the price of every associated product. The association is a
// set, so each product counts once.
func (r *OrderRepo) Total(ctx context.Context, id string) (decimal.Decimal, error) {
	if !validID(id) {
		return decimal.Zero, NotFound("order", id)
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, NotFound("order", id)
	}

	var total decimal.Decimal
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.price), 0)
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id=$1`, id,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
