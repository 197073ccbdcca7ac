package api

// swagger:model api.RestaurantRequest
type RestaurantRequest struct {
	Name     string `form:"name" json:"name" validate:"max=200" example:"Golden Dragon"`
	Location string `form:"location" json:"location" validate:"max=200" example:"Taipei"`
	Phone    string `form:"phone" json:"phone" validate:"max=32" example:"0223456789"`
	// Status 只在更新時使用，空白代表不變
	Status string `form:"status" json:"status" validate:"omitempty,oneof=active inactive deleted" example:"active"`
}

// ListRestaurantsQuery 列表查詢參數
type ListRestaurantsQuery struct {
	Start    int    `query:"start" validate:"min=0" example:"0"`
	Length   int    `query:"length" validate:"min=0" example:"20"`
	Name     string `query:"name" example:"Pizza"`
	Location string `query:"location"`
	Phone    string `query:"phone"`
}
