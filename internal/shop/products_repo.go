package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ DB *pgxpool.Pool }

type ProductInput struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"` // optional, defaults to 0
}

func (in ProductInput) Validate() error {
	v := NewValidationError()
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	if in.Price == nil {
		v.Add("price", "price is required")
	} else if in.Price.IsNegative() {
		v.Add("price", "price must not be negative")
	}
	if in.Stock != nil && *in.Stock < 0 {
		v.Add("stock", "stock must not be negative")
	}
	return v.OrNil()
}

func (r *ProductRepo) Create(ctx context.Context, in ProductInput) (Product, error) {
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	p := Product{ID: uuid.NewString(), Name: in.Name, Price: *in.Price, Stock: stock}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(id, name, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Price, p.Stock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (Product, error) {
	if !validID(id) {
		return Product{}, NotFound("product", id)
	}
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, NotFound("product", id)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	if !validID(id) {
		return Product{}, NotFound("product", id)
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	p := Product{ID: id, Name: in.Name, Price: *in.Price, Stock: stock}
	err := r.DB.QueryRow(ctx, `
		UPDATE products SET name=$2, price=$3, stock=$4, updated_at=now()
		WHERE id=$1
		RETURNING created_at, updated_at`,
		id, p.Name, p.Price, p.Stock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, NotFound("product", id)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete is rejected while any order still references the product; the FK
// is RESTRICT so the violation is translated to a validation failure.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("product", id)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return translateConstraint(err, "id", "product is referenced by an order")
	}
	if ct.RowsAffected() == 0 {
		return NotFound("product", id)
	}
	return nil
}

// SetStock is a direct set, not an increment.
func (r *ProductRepo) SetStock(ctx context.Context, id string, stock int) (Product, error) {
	if stock < 0 {
		return Product{}, Invalid("stock", "stock must not be negative")
	}
	if !validID(id) {
		return Product{}, NotFound("product", id)
	}
	var p Product
	err := r.DB.QueryRow(ctx, `
		UPDATE products SET stock=$2, updated_at=now()
		WHERE id=$1
		RETURNING id, name, price, stock, created_at, updated_at`,
		id, stock,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, NotFound("product", id)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Restock bumps every product with stock strictly below threshold by amount,
// as one statement so there is no read-modify-write window.
func (r *ProductRepo) Restock(ctx context.Context, threshold, amount int) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		UPDATE products SET stock = stock + $2, updated_at=now()
		WHERE stock < $1
		RETURNING id, name, price, stock, created_at, updated_at`,
		threshold, amount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
