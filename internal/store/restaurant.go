package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinehub/internal/database"
	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const restaurantColumns = `id, name, location, phone, abbreviation, status, status_changed_at, created_at, updated_at`

// RestaurantFilter 列表查詢條件
type RestaurantFilter struct {
	// Statuses 一律可見的狀態
	Statuses []model.RestaurantStatus
	// InactiveSince 非 nil 時，另外納入在此時間之後才停用的餐廳
	InactiveSince *time.Time

	Name     string
	Location string
	Phone    string

	Offset int
	Limit  int
}

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	r := &model.Restaurant{}
	if err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Location,
		&r.Phone,
		&r.Abbreviation,
		&r.Status,
		&r.StatusChangedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r, nil
}

func CreateRestaurant(ctx context.Context, db database.Querier, r *model.Restaurant) error {
	row := db.QueryRow(ctx,
		`INSERT INTO restaurants (id, name, location, phone, abbreviation, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING status_changed_at, created_at, updated_at`,
		r.ID,
		r.Name,
		r.Location,
		r.Phone,
		r.Abbreviation,
		r.Status,
	)
	if err := row.Scan(&r.StatusChangedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return fmt.Errorf("CreateRestaurant: %w", translate(err))
	}
	return nil
}

func GetRestaurantByID(ctx context.Context, db database.Querier, id uuid.UUID) (*model.Restaurant, error) {
	r, err := scanRestaurant(db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("GetRestaurantByID: %w", translate(err))
	}
	return r, nil
}

// LockRestaurant 以 FOR UPDATE 取得資料列，必須在交易中呼叫
func LockRestaurant(ctx context.Context, db database.Querier, id uuid.UUID) (*model.Restaurant, error) {
	r, err := scanRestaurant(db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("LockRestaurant: %w", translate(err))
	}
	return r, nil
}

// LockRestaurantWithStatus only matches a row currently in the given status.
func LockRestaurantWithStatus(ctx context.Context, db database.Querier, id uuid.UUID, status model.RestaurantStatus) (*model.Restaurant, error) {
	r, err := scanRestaurant(db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1 AND status = $2 FOR UPDATE`,
		id,
		status,
	))
	if err != nil {
		return nil, fmt.Errorf("LockRestaurantWithStatus: %w", translate(err))
	}
	return r, nil
}

func UpdateRestaurant(ctx context.Context, db database.Querier, r *model.Restaurant) error {
	row := db.QueryRow(ctx,
		`UPDATE restaurants
		 SET name = $1, location = $2, phone = $3, status = $4, status_changed_at = $5, updated_at = now()
		 WHERE id = $6
		 RETURNING updated_at`,
		r.Name,
		r.Location,
		r.Phone,
		r.Status,
		r.StatusChangedAt,
		r.ID,
	)
	if err := row.Scan(&r.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateRestaurant: %w", translate(err))
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func restaurantWhere(f RestaurantFilter) (string, []any) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}
	args := []any{statuses}
	where := "status = ANY($1)"
	if f.InactiveSince != nil {
		args = append(args, model.RestaurantInactive, *f.InactiveSince)
		where = fmt.Sprintf("(%s OR (status = $%d AND status_changed_at >= $%d))", where, len(args)-1, len(args))
	}

	for _, c := range []struct{ col, val string }{
		{"name", f.Name},
		{"location", f.Location},
		{"phone", f.Phone},
	} {
		if c.val == "" {
			continue
		}
		args = append(args, containsPattern(c.val))
		where += fmt.Sprintf(" AND %s ILIKE $%d", c.col, len(args))
	}
	return where, args
}

func CountRestaurants(ctx context.Context, db database.Querier, f RestaurantFilter) (int, error) {
	where, args := restaurantWhere(f)
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("CountRestaurants: %w", translate(err))
	}
	return total, nil
}

func ListRestaurants(ctx context.Context, db database.Querier, f RestaurantFilter) ([]model.Restaurant, error) {
	where, args := restaurantWhere(f)
	args = append(args, f.Limit, f.Offset)
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM restaurants WHERE %s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d`,
			restaurantColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRestaurants: %w", translate(err))
	}
	defer rows.Close()

	list := []model.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRestaurants scan: %w", err)
		}
		list = append(list, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRestaurants rows: %w", err)
	}
	return list, nil
}
