package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Cascade policy is pinned here rather than inherited from store defaults:
// deleting a customer removes its orders and its account; deleting an order
// removes its product associations; deleting a product still referenced by
// an order is rejected.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id         uuid PRIMARY KEY,
	name       text NOT NULL,
	email      text NOT NULL DEFAULT '',
	phone      text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customer_accounts (
	id            uuid PRIMARY KEY,
	customer_id   uuid NOT NULL UNIQUE REFERENCES customers(id) ON DELETE CASCADE,
	username      text NOT NULL UNIQUE,
	password_hash text NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id         uuid PRIMARY KEY,
	name       text NOT NULL,
	price      numeric(12,2) NOT NULL CHECK (price >= 0),
	stock      integer NOT NULL DEFAULT 0 CHECK (stock >= 0),
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id                     uuid PRIMARY KEY,
	customer_id            uuid NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	order_date             date NOT NULL,
	status                 text NOT NULL DEFAULT 'pending',
	expected_delivery_date date,
	created_at             timestamptz NOT NULL DEFAULT now(),
	updated_at             timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);

CREATE TABLE IF NOT EXISTS order_products (
	order_id   uuid NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id uuid NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
	PRIMARY KEY (order_id, product_id)
);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
