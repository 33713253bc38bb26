package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type AccountRepo struct{ DB *pgxpool.Pool }

type AccountInput struct {
	CustomerID string `json:"customer_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (in AccountInput) Validate() error {
	v := NewValidationError()
	if in.CustomerID == "" {
		v.Add("customer_id", "customer_id is required")
	}
	if in.Username == "" {
		v.Add("username", "username is required")
	}
	if in.Password == "" {
		v.Add("password", "password is required")
	}
	return v.OrNil()
}

// AccountUpdate overwrites username and password only.
type AccountUpdate struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in AccountUpdate) Validate() error {
	v := NewValidationError()
	if in.Username == "" {
		v.Add("username", "username is required")
	}
	if in.Password == "" {
		v.Add("password", "password is required")
	}
	return v.OrNil()
}

// Create resolves the owning customer first (404 if absent), stores the
// password as a bcrypt hash. One account per customer; duplicate usernames
// come back as field-level validation failures, not driver errors.
func (r *AccountRepo) Create(ctx context.Context, in AccountInput) (Account, error) {
	if !validID(in.CustomerID) {
		return Account{}, NotFound("customer", in.CustomerID)
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`, in.CustomerID).Scan(&exists); err != nil {
		return Account{}, err
	}
	if !exists {
		return Account{}, NotFound("customer", in.CustomerID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	a := Account{ID: uuid.NewString(), CustomerID: in.CustomerID, Username: in.Username}
	err = r.DB.QueryRow(ctx, `
		INSERT INTO customer_accounts(id, customer_id, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		a.ID, a.CustomerID, a.Username, string(hash),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Account{}, translateConstraint(err, "username", "username already taken")
	}
	return a, nil
}

func (r *AccountRepo) Get(ctx context.Context, id string) (Account, error) {
	if !validID(id) {
		return Account{}, NotFound("account", id)
	}
	var a Account
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_id, username, created_at, updated_at
		FROM customer_accounts WHERE id=$1`, id,
	).Scan(&a.ID, &a.CustomerID, &a.Username, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, NotFound("account", id)
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

func (r *AccountRepo) Update(ctx context.Context, id string, in AccountUpdate) (Account, error) {
	if !validID(id) {
		return Account{}, NotFound("account", id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	var a Account
	err = r.DB.QueryRow(ctx, `
		UPDATE customer_accounts SET username=$2, password_hash=$3, updated_at=now()
		WHERE id=$1
		RETURNING id, customer_id, username, created_at, updated_at`,
		id, in.Username, string(hash),
	).Scan(&a.ID, &a.CustomerID, &a.Username, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, NotFound("account", id)
	}
	if err != nil {
		return Account{}, translateConstraint(err, "username", "username already taken")
	}
	return a, nil
}

func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("account", id)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM customer_accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFound("account", id)
	}
	return nil
}
