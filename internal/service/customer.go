package service

import (
	"context"
	"errors"
	"strings"

	"dinehub/internal/model"
	"dinehub/internal/store"
	"dinehub/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateCustomerInput struct {
	Name             string
	Phone            string
	Email            string
	CreditCardNumber string
}

// CreateCustomer 直接註冊一筆 Customer（不建立登入帳號）
func (s *IdentityService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*model.Customer, error) {
	in.Email = normalizeEmail(in.Email)
	switch {
	case utils.IsEmpty(in.Name):
		return nil, validationError("name", "Name cannot be empty")
	case utils.IsEmpty(in.Phone):
		return nil, validationError("phone", "Phone number is required")
	case utils.IsEmpty(in.Email):
		return nil, validationError("email", "Email is required")
	case utils.IsEmpty(in.CreditCardNumber):
		return nil, validationError("creditCardNumber", "creditCardNumber is required")
	}

	if _, err := s.gw.GetCustomerByEmail(ctx, in.Email); err == nil {
		return nil, &Error{Kind: KindDuplicate, Field: "email", Message: "Customer with similar details already exists"}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("lookup customer by email failed", zap.Error(err))
		return nil, persistenceError("Failed to create customer", err)
	}

	c := &model.Customer{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(in.Name),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            in.Email,
		CreditCardNumber: strings.TrimSpace(in.CreditCardNumber),
	}
	if err := s.gw.CreateCustomer(ctx, c); err != nil {
		s.logger.Error("create customer failed", zap.Error(err))
		return nil, persistenceError("Failed to create customer", err)
	}
	return c, nil
}

func (s *IdentityService) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	cid, err := parseID("customerID", "Customer", id)
	if err != nil {
		return nil, err
	}
	c, err := s.gw.GetCustomerByID(ctx, cid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Customer not found")
		}
		return nil, persistenceError("Failed to fetch customer", err)
	}
	return c, nil
}

func parseID(field, entity, raw string) (uuid.UUID, error) {
	if utils.IsEmpty(raw) {
		return uuid.Nil, validationError(field, entity+" ID is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, validationError(field, entity+" ID is invalid")
	}
	return id, nil
}
