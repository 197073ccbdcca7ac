package api

import (
	"errors"
	"net/http"
	"time"

	"dinehub/internal/service"
)

// Result 所有 API 的統一回應格式，status 即 HTTP 狀態碼
// swagger:model api.Result
type Result struct {
	Status          int        `json:"status" example:"200"`
	Message         string     `json:"message,omitempty" example:"ok"`
	Data            any        `json:"data,omitempty"`
	Error           string     `json:"error,omitempty" example:"validation_error"`
	Field           string     `json:"field,omitempty" example:"email"`
	Token           string     `json:"token,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	RecordsTotal    *int       `json:"recordsTotal,omitempty" example:"42"`
	RecordsFiltered *int       `json:"recordsFiltered,omitempty" example:"42"`
}

func NewResult(status int, message string, data any) Result {
	return Result{Status: status, Message: message, Data: data}
}

// NewListResult 分頁列表回應；recordsFiltered 與 recordsTotal 相同
func NewListResult(data any, total int) Result {
	filtered := total
	return Result{Status: http.StatusOK, Data: data, RecordsTotal: &total, RecordsFiltered: &filtered}
}

// NewErrorResult 由 service.Error 轉換；其他錯誤一律視為 500 且不回傳細節
func NewErrorResult(err error) Result {
	var se *service.Error
	if !errors.As(err, &se) {
		return Result{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
			Error:   service.KindInternal.String(),
		}
	}
	return Result{
		Status:  se.Kind.Status(),
		Message: se.Message,
		Error:   se.Kind.String(),
		Field:   se.Field,
	}
}

// BadRequest 綁定或欄位格式錯誤
func BadRequest(message string) Result {
	return Result{Status: http.StatusBadRequest, Message: message, Error: service.KindValidation.String()}
}
