package restaurants

import (
	"context"
	"net/http"

	"dinehub/internal/api"
	"dinehub/internal/model"
	"dinehub/internal/service"

	"github.com/labstack/echo/v4"
)

type RestaurantService interface {
	Create(ctx context.Context, in service.RestaurantInput) (*model.Restaurant, error)
	List(ctx context.Context, p service.ListParams) (*service.ListResult, error)
	Get(ctx context.Context, id string) (*model.Restaurant, error)
	Update(ctx context.Context, id string, in service.RestaurantInput) (*model.Restaurant, error)
	Deactivate(ctx context.Context, id string) (*model.Restaurant, error)
	SoftDelete(ctx context.Context, id string) (*model.Restaurant, error)
}

func writeError(c echo.Context, err error) error {
	r := api.NewErrorResult(err)
	return c.JSON(r.Status, r)
}

func bindRestaurant(c echo.Context) (service.RestaurantInput, *api.Result) {
	var req api.RestaurantRequest
	if err := c.Bind(&req); err != nil {
		r := api.BadRequest("invalid form data")
		return service.RestaurantInput{}, &r
	}
	if err := c.Validate(&req); err != nil {
		r := api.BadRequest(err.Error())
		return service.RestaurantInput{}, &r
	}
	return service.RestaurantInput{Name: req.Name, Location: req.Location, Phone: req.Phone, Status: req.Status}, nil
}

// ListHandler 依 view 列出餐廳；public 只看得到營業中，admin 另含已刪除與近期停用
// @Summary     List restaurants
// @Description 分頁列出餐廳，可依名稱、地點、電話做不分大小寫的部分比對，依名稱排序
// @Tags        restaurants
// @Produce     json
// @Param       start    query int    false "起始位移 (預設 0)"
// @Param       length   query int    false "每頁筆數 (預設 20，上限 100)"
// @Param       name     query string false "名稱包含"
// @Param       location query string false "地點包含"
// @Param       phone    query string false "電話包含"
// @Success     200 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     500 {object} api.Result
// @Router      /restaurants [get]
func ListHandler(svc RestaurantService, view service.ListView) echo.HandlerFunc {
	return func(c echo.Context) error {
		var q api.ListRestaurantsQuery
		if err := c.Bind(&q); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest("invalid query parameters"))
		}
		if err := c.Validate(&q); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest(err.Error()))
		}

		res, err := svc.List(c.Request().Context(), service.ListParams{
			Start:    q.Start,
			Length:   q.Length,
			Name:     q.Name,
			Location: q.Location,
			Phone:    q.Phone,
			View:     view,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewListResult(res.Data, res.RecordsTotal))
	}
}

// @Summary     Get a restaurant by ID
// @Tags        restaurants
// @Produce     json
// @Param       id  path     string true "Restaurant ID (UUID)"
// @Success     200 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     404 {object} api.Result
// @Router      /restaurants/{id} [get]
func GetHandler(svc RestaurantService) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "", r))
	}
}

// @Summary     Create a restaurant
// @Description 建立餐廳，縮寫由名稱自動產生，狀態為 active
// @Tags        restaurants
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name     formData string true "名稱"
// @Param       location formData string true "地點"
// @Param       phone    formData string true "電話"
// @Success     201 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     403 {object} api.Result
// @Failure     500 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /restaurants [post]
func CreateHandler(svc RestaurantService) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, bad := bindRestaurant(c)
		if bad != nil {
			return c.JSON(bad.Status, bad)
		}
		r, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewResult(http.StatusCreated, "Restaurant created successfully", r))
	}
}

// @Summary     Update a restaurant
// @Description 更新名稱、地點、電話 (須為數字)；status 只能維持或依狀態轉移表前進
// @Tags        restaurants
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       id       path     string true  "Restaurant ID (UUID)"
// @Param       name     formData string true  "名稱"
// @Param       location formData string true  "地點"
// @Param       phone    formData string true  "電話"
// @Param       status   formData string false "active / inactive / deleted"
// @Success     200 {object} api.Result
// @Failure     400 {object} api.Result
// @Failure     404 {object} api.Result
// @Failure     409 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /restaurants/{id} [put]
func UpdateHandler(svc RestaurantService) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, bad := bindRestaurant(c)
		if bad != nil {
			return c.JSON(bad.Status, bad)
		}
		r, err := svc.Update(c.Request().Context(), c.Param("id"), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "Restaurant updated successfully", r))
	}
}

// @Summary     Deactivate a restaurant
// @Tags        restaurants
// @Produce     json
// @Param       id  path     string true "Restaurant ID (UUID)"
// @Success     200 {object} api.Result
// @Failure     404 {object} api.Result
// @Failure     409 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /restaurants/{id}/deactivate [patch]
func DeactivateHandler(svc RestaurantService) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := svc.Deactivate(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "Restaurant deactivated successfully", r))
	}
}

// @Summary     Delete a restaurant
// @Description 軟刪除；重複刪除會回傳 409
// @Tags        restaurants
// @Produce     json
// @Param       id  path     string true "Restaurant ID (UUID)"
// @Success     200 {object} api.Result
// @Failure     404 {object} api.Result
// @Failure     409 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /restaurants/{id} [delete]
func DeleteHandler(svc RestaurantService) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := svc.SoftDelete(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "Restaurant deleted successfully", r))
	}
}
