package store

import (
	"context"
	"fmt"

	"dinehub/internal/database"
	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, name, phone, email, credit_card_number, created_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	c := &model.Customer{}
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.CreditCardNumber,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return c, nil
}

func GetCustomerByID(ctx context.Context, db database.Querier, id uuid.UUID) (*model.Customer, error) {
	c, err := scanCustomer(db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("GetCustomerByID: %w", translate(err))
	}
	return c, nil
}

func GetCustomerByEmail(ctx context.Context, db database.Querier, email string) (*model.Customer, error) {
	c, err := scanCustomer(db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1
		 ORDER BY created_at LIMIT 1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetCustomerByEmail: %w", translate(err))
	}
	return c, nil
}

func CreateCustomer(ctx context.Context, db database.Querier, c *model.Customer) error {
	row := db.QueryRow(ctx,
		`INSERT INTO customers (id, name, phone, email, credit_card_number)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		c.ID,
		c.Name,
		c.Phone,
		c.Email,
		c.CreditCardNumber,
	)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("CreateCustomer: %w", translate(err))
	}
	return nil
}
