package api

// max 以字元計；bcrypt 的 72 bytes 上限由 service 檢查
// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name             string `form:"name" json:"name" validate:"max=100" example:"Alice"`
	Phone            string `form:"phone" json:"phone" validate:"max=32" example:"0912345678"`
	Email            string `form:"email" json:"email" validate:"max=254" example:"alice@example.com"`
	Password         string `form:"password" json:"password" validate:"max=72" example:"Secret123!"`
	UserType         string `form:"userType" json:"userType" example:"customer"`
	CustomerID       string `form:"customerID" json:"customerID" example:"7f0c8a5e-4d1b-4a7e-9f7a-2a8f1f1b9c11"`
	CreditCardNumber string `form:"creditCardNumber" json:"creditCardNumber" validate:"max=32" example:"4111111111111111"`
}
