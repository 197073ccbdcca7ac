// File: internal/model/restaurant.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RestaurantStatus string

const (
	RestaurantActive   RestaurantStatus = "active"
	RestaurantInactive RestaurantStatus = "inactive"
	RestaurantDeleted  RestaurantStatus = "deleted"
)

// restaurantTransitions is the only place status changes are defined.
// inactive and deleted have no outgoing edges.
var restaurantTransitions = map[RestaurantStatus][]RestaurantStatus{
	RestaurantActive:   {RestaurantInactive, RestaurantDeleted},
	RestaurantInactive: nil,
	RestaurantDeleted:  nil,
}

// ParseRestaurantStatus 解析狀態字串，只接受小寫的三種狀態
func ParseRestaurantStatus(s string) (RestaurantStatus, error) {
	st := RestaurantStatus(s)
	if _, ok := restaurantTransitions[st]; !ok {
		return "", fmt.Errorf("unknown restaurant status %q", s)
	}
	return st, nil
}

// NextStatuses returns the statuses reachable from s in one step.
func NextStatuses(s RestaurantStatus) []RestaurantStatus {
	return restaurantTransitions[s]
}

// CanTransition reports whether a restaurant may move from one status to another.
// Staying in the same status is not a transition and is rejected here.
func CanTransition(from, to RestaurantStatus) bool {
	for _, next := range restaurantTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal 沒有任何可轉移的下一個狀態
func (s RestaurantStatus) IsTerminal() bool {
	return len(restaurantTransitions[s]) == 0
}

type Restaurant struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	Name            string           `db:"name" json:"name"`
	Location        string           `db:"location" json:"location"`
	Phone           string           `db:"phone" json:"phone"`
	Abbreviation    string           `db:"abbreviation" json:"abbreviation"`
	Status          RestaurantStatus `db:"status" json:"status"`
	StatusChangedAt time.Time        `db:"status_changed_at" json:"status_changed_at"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}
