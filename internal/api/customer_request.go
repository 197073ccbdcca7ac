package api

// swagger:model api.CreateCustomerRequest
type CreateCustomerRequest struct {
	Name             string `form:"name" json:"name" validate:"max=100" example:"Carol"`
	Phone            string `form:"phone" json:"phone" validate:"max=32" example:"0912345678"`
	Email            string `form:"email" json:"email" validate:"max=254" example:"carol@example.com"`
	CreditCardNumber string `form:"creditCardNumber" json:"creditCardNumber" validate:"max=32" example:"4111111111111111"`
}
