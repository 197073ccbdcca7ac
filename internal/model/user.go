// File: internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserType 帳號種類
type UserType string

const (
	UserTypeAdmin    UserType = "admin"
	UserTypeCustomer UserType = "customer"
)

// Valid reports whether t is one of the known account kinds.
func (t UserType) Valid() bool {
	return t == UserTypeAdmin || t == UserTypeCustomer
}

type User struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Phone            string     `db:"phone" json:"phone"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	UserType         UserType   `db:"user_type" json:"user_type"`
	Session          *string    `db:"session" json:"-"`
	SessionExpiry    *time.Time `db:"session_expiry" json:"session_expiry,omitempty"`
	CustomerID       *uuid.UUID `db:"customer_id" json:"customer_id,omitempty"`
	CreditCardNumber *string    `db:"credit_card_number" json:"credit_card_number,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// IsCustomer 是否為綁定 Customer 的帳號
func (u *User) IsCustomer() bool {
	return u.UserType == UserTypeCustomer
}
