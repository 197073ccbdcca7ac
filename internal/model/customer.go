// File: internal/model/customer.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Phone            string    `db:"phone" json:"phone"`
	Email            string    `db:"email" json:"email"`
	CreditCardNumber string    `db:"credit_card_number" json:"credit_card_number"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
