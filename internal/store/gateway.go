package store

import (
	"context"
	"time"

	"dinehub/internal/database"
	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Gateway 是業務邏輯唯一依賴的儲存介面
type Gateway interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUserSession(ctx context.Context, id uuid.UUID, session string, expiry time.Time) error
	ClearExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	GetCustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, c *model.Customer) error

	CreateRestaurant(ctx context.Context, r *model.Restaurant) error
	GetRestaurantByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	LockRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	LockRestaurantWithStatus(ctx context.Context, id uuid.UUID, status model.RestaurantStatus) (*model.Restaurant, error)
	UpdateRestaurant(ctx context.Context, r *model.Restaurant) error
	// ListRestaurants returns one page and the total matching count from the same snapshot.
	ListRestaurants(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, int, error)

	// WithTx runs fn against a Gateway bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx Gateway) error) error
}

// Postgres 以 pgx 實作 Gateway。db 為 nil 代表已綁定在交易上。
type Postgres struct {
	db database.DB
	q  database.Querier
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db, q: db}
}

var snapshotTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

func (p *Postgres) WithTx(ctx context.Context, fn func(tx Gateway) error) error {
	if p.db == nil {
		return fn(p)
	}
	return database.WithTx(ctx, p.db, pgx.TxOptions{}, func(q database.Querier) error {
		return fn(&Postgres{q: q})
	})
}

func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return GetUserByID(ctx, p.q, id)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetUserByEmail(ctx, p.q, email)
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	return CreateUser(ctx, p.q, u)
}

func (p *Postgres) UpdateUserSession(ctx context.Context, id uuid.UUID, session string, expiry time.Time) error {
	return UpdateUserSession(ctx, p.q, id, session, expiry)
}

func (p *Postgres) ClearExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return ClearExpiredSessions(ctx, p.q, now)
}

func (p *Postgres) GetCustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return GetCustomerByID(ctx, p.q, id)
}

func (p *Postgres) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return GetCustomerByEmail(ctx, p.q, email)
}

func (p *Postgres) CreateCustomer(ctx context.Context, c *model.Customer) error {
	return CreateCustomer(ctx, p.q, c)
}

func (p *Postgres) CreateRestaurant(ctx context.Context, r *model.Restaurant) error {
	return CreateRestaurant(ctx, p.q, r)
}

func (p *Postgres) GetRestaurantByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	return GetRestaurantByID(ctx, p.q, id)
}

func (p *Postgres) LockRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	return LockRestaurant(ctx, p.q, id)
}

func (p *Postgres) LockRestaurantWithStatus(ctx context.Context, id uuid.UUID, status model.RestaurantStatus) (*model.Restaurant, error) {
	return LockRestaurantWithStatus(ctx, p.q, id, status)
}

func (p *Postgres) UpdateRestaurant(ctx context.Context, r *model.Restaurant) error {
	return UpdateRestaurant(ctx, p.q, r)
}

func (p *Postgres) ListRestaurants(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, int, error) {
	var (
		list  []model.Restaurant
		total int
	)
	read := func(q database.Querier) error {
		var err error
		if total, err = CountRestaurants(ctx, q, f); err != nil {
			return err
		}
		list, err = ListRestaurants(ctx, q, f)
		return err
	}

	var err error
	if p.db == nil {
		err = read(p.q)
	} else {
		err = database.WithTx(ctx, p.db, snapshotTx, read)
	}
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
