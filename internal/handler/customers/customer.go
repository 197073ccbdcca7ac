package customers

import (
	"context"
	"net/http"

	"dinehub/internal/api"
	"dinehub/internal/model"
	"dinehub/internal/service"

	"github.com/labstack/echo/v4"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, in service.CreateCustomerInput) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
}

// @Summary     Register a customer
// @Description 建立獨立的 Customer 資料 (不建立登入帳號)
// @Tags        customers
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name             formData string true "姓名"
// @Param       phone            formData string true "電話"
// @Param       email            formData string true "Email"
// @Param       creditCardNumber formData string true "信用卡號"
// @Success     201 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     409 {object} api.Result
// @Failure     500 {object} api.Result
// @Router      /customers [post]
func CreateCustomerHandler(svc CustomerService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCustomerRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest("invalid form data"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest(err.Error()))
		}

		cust, err := svc.CreateCustomer(c.Request().Context(), service.CreateCustomerInput{
			Name:             req.Name,
			Phone:            req.Phone,
			Email:            req.Email,
			CreditCardNumber: req.CreditCardNumber,
		})
		if err != nil {
			r := api.NewErrorResult(err)
			return c.JSON(r.Status, r)
		}
		return c.JSON(http.StatusCreated, api.NewResult(http.StatusCreated, "Customer created successfully", cust))
	}
}

// @Summary     Get a customer by ID
// @Tags        customers
// @Produce     json
// @Param       id  path     string true "Customer ID (UUID)"
// @Success     200 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     403 {object} api.Result
// @Failure     404 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /customers/{id} [get]
func GetCustomerHandler(svc CustomerService) echo.HandlerFunc {
	return func(c echo.Context) error {
		cust, err := svc.GetCustomer(c.Request().Context(), c.Param("id"))
		if err != nil {
			r := api.NewErrorResult(err)
			return c.JSON(r.Status, r)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "", cust))
	}
}
