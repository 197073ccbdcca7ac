package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/store"
	"dinehub/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageLength = 20
	MaxPageLength     = 100
)

// ListView 決定列表可見的狀態集合
type ListView int

const (
	// ViewPublic 只列出營業中的餐廳
	ViewPublic ListView = iota
	// ViewAdmin 另外列出已刪除，以及近期才停用的餐廳
	ViewAdmin
)

type RestaurantInput struct {
	Name     string
	Location string
	Phone    string
	// Status 只有 Update 使用，空字串代表不變
	Status string
}

type ListParams struct {
	Start    int
	Length   int
	Name     string
	Location string
	Phone    string
	View     ListView
}

type ListResult struct {
	Data            []model.Restaurant
	RecordsTotal    int
	RecordsFiltered int
}

type RestaurantService struct {
	gw             store.Gateway
	inactiveWindow time.Duration
	logger         *zap.Logger
}

func NewRestaurantService(gw store.Gateway, inactiveWindow time.Duration, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{gw: gw, inactiveWindow: inactiveWindow, logger: logger}
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*model.Restaurant, error) {
	switch {
	case utils.IsEmpty(in.Name):
		return nil, validationError("name", "Name is required")
	case !utils.MinLength(strings.TrimSpace(in.Location), 1):
		return nil, validationError("location", "Location is required")
	case utils.IsEmpty(in.Phone):
		return nil, validationError("phone", "Phone number is required")
	}

	name := strings.TrimSpace(in.Name)
	r := &model.Restaurant{
		ID:           uuid.New(),
		Name:         name,
		Location:     strings.TrimSpace(in.Location),
		Phone:        strings.TrimSpace(in.Phone),
		Abbreviation: utils.Abbreviate(name),
		Status:       model.RestaurantActive,
	}
	if err := s.gw.CreateRestaurant(ctx, r); err != nil {
		s.logger.Error("create restaurant failed", zap.Error(err))
		return nil, persistenceError("Failed to create restaurant", err)
	}
	s.logger.Info("restaurant created", zap.String("restaurant_id", r.ID.String()), zap.String("abbreviation", r.Abbreviation))
	return r, nil
}

func (s *RestaurantService) filterFor(p ListParams) store.RestaurantFilter {
	f := store.RestaurantFilter{
		Statuses: []model.RestaurantStatus{model.RestaurantActive},
		Name:     strings.TrimSpace(p.Name),
		Location: strings.TrimSpace(p.Location),
		Phone:    strings.TrimSpace(p.Phone),
		Offset:   p.Start,
		Limit:    p.Length,
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultPageLength
	case f.Limit > MaxPageLength:
		f.Limit = MaxPageLength
	}
	if p.View == ViewAdmin {
		f.Statuses = append(f.Statuses, model.RestaurantDeleted)
		since := utils.WindowStart(timeNow(), s.inactiveWindow)
		f.InactiveSince = &since
	}
	return f
}

// List 回傳一頁資料，總數與資料來自同一次快照
func (s *RestaurantService) List(ctx context.Context, p ListParams) (*ListResult, error) {
	list, total, err := s.gw.ListRestaurants(ctx, s.filterFor(p))
	if err != nil {
		s.logger.Error("list restaurants failed", zap.Error(err))
		return nil, persistenceError("Failed to fetch restaurants", err)
	}
	return &ListResult{Data: list, RecordsTotal: total, RecordsFiltered: total}, nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*model.Restaurant, error) {
	rid, err := parseID("id", "Restaurant", id)
	if err != nil {
		return nil, err
	}
	r, err := s.gw.GetRestaurantByID(ctx, rid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Restaurant not found")
		}
		s.logger.Error("get restaurant failed", zap.Error(err))
		return nil, persistenceError("Failed to fetch restaurant", err)
	}
	return r, nil
}

// Update 修改餐廳資料；狀態只能維持原樣或依轉移表前進
func (s *RestaurantService) Update(ctx context.Context, id string, in RestaurantInput) (*model.Restaurant, error) {
	rid, err := parseID("id", "Restaurant", id)
	if err != nil {
		return nil, err
	}
	switch {
	case utils.IsEmpty(in.Name):
		return nil, validationError("name", "Name is required")
	case utils.IsEmpty(in.Location):
		return nil, validationError("location", "Location is required")
	case utils.IsEmpty(in.Phone):
		return nil, validationError("phone", "Phone number is required")
	case !utils.IsNumeric(strings.TrimSpace(in.Phone)):
		return nil, validationError("phone", "Phone number must be numeric")
	}

	var target model.RestaurantStatus
	if status := strings.TrimSpace(in.Status); status != "" {
		if target, err = model.ParseRestaurantStatus(status); err != nil {
			return nil, validationError("status", "status must be one of active, inactive, deleted")
		}
	}

	var updated *model.Restaurant
	err = s.gw.WithTx(ctx, func(tx store.Gateway) error {
		r, err := tx.LockRestaurant(ctx, rid)
		if err != nil {
			return err
		}
		if r.Status == model.RestaurantDeleted {
			return &Error{Kind: KindAlreadyInState, Field: "status", Message: "Restaurant already deleted"}
		}
		if target != "" && target != r.Status {
			if !model.CanTransition(r.Status, target) {
				return &Error{Kind: KindInvalidTransition, Field: "status",
					Message: "Cannot change restaurant status from " + string(r.Status) + " to " + string(target)}
			}
			r.Status = target
			r.StatusChangedAt = timeNow()
		}
		r.Name = strings.TrimSpace(in.Name)
		r.Location = strings.TrimSpace(in.Location)
		r.Phone = strings.TrimSpace(in.Phone)
		if err := tx.UpdateRestaurant(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, s.restaurantTxError("update", rid, err)
	}
	return updated, nil
}

// Deactivate 將營業中的餐廳改為停用，鎖定與更新在同一交易內完成
func (s *RestaurantService) Deactivate(ctx context.Context, id string) (*model.Restaurant, error) {
	rid, err := parseID("id", "Restaurant", id)
	if err != nil {
		return nil, err
	}

	var updated *model.Restaurant
	err = s.gw.WithTx(ctx, func(tx store.Gateway) error {
		r, err := tx.LockRestaurantWithStatus(ctx, rid, model.RestaurantActive)
		if errors.Is(err, store.ErrNotFound) {
			current, err := tx.GetRestaurantByID(ctx, rid)
			if err != nil {
				return err
			}
			return &Error{Kind: KindAlreadyInState, Field: "status", Message: "Restaurant already " + string(current.Status)}
		}
		if err != nil {
			return err
		}
		r.Status = model.RestaurantInactive
		r.StatusChangedAt = timeNow()
		if err := tx.UpdateRestaurant(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, s.restaurantTxError("deactivate", rid, err)
	}
	s.logger.Info("restaurant deactivated", zap.String("restaurant_id", rid.String()))
	return updated, nil
}

// SoftDelete 將餐廳標記為已刪除；重複呼叫會回傳錯誤
func (s *RestaurantService) SoftDelete(ctx context.Context, id string) (*model.Restaurant, error) {
	rid, err := parseID("id", "Restaurant", id)
	if err != nil {
		return nil, err
	}

	var updated *model.Restaurant
	err = s.gw.WithTx(ctx, func(tx store.Gateway) error {
		r, err := tx.LockRestaurant(ctx, rid)
		if err != nil {
			return err
		}
		if r.Status == model.RestaurantDeleted {
			return &Error{Kind: KindAlreadyInState, Field: "status", Message: "Restaurant already deleted"}
		}
		if !model.CanTransition(r.Status, model.RestaurantDeleted) {
			return &Error{Kind: KindInvalidTransition, Field: "status",
				Message: "Cannot delete a restaurant that is " + string(r.Status)}
		}
		r.Status = model.RestaurantDeleted
		r.StatusChangedAt = timeNow()
		if err := tx.UpdateRestaurant(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, s.restaurantTxError("delete", rid, err)
	}
	s.logger.Info("restaurant deleted", zap.String("restaurant_id", rid.String()))
	return updated, nil
}

func (s *RestaurantService) restaurantTxError(op string, id uuid.UUID, err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Restaurant not found")
	}
	s.logger.Error("restaurant "+op+" failed", zap.String("restaurant_id", id.String()), zap.Error(err))
	return persistenceError("Failed to "+op+" restaurant", err)
}
