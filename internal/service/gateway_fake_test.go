package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/store"

	"github.com/google/uuid"
)

type memState struct {
	users       map[uuid.UUID]model.User
	customers   map[uuid.UUID]model.Customer
	restaurants map[uuid.UUID]model.Restaurant
	writes      int
}

func (s *memState) clone() *memState {
	c := &memState{
		users:       make(map[uuid.UUID]model.User, len(s.users)),
		customers:   make(map[uuid.UUID]model.Customer, len(s.customers)),
		restaurants: make(map[uuid.UUID]model.Restaurant, len(s.restaurants)),
		writes:      s.writes,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.restaurants {
		c.restaurants[k] = v
	}
	return c
}

// memGateway 是 store.Gateway 的記憶體實作；WithTx 以互斥鎖序列化，失敗時還原快照
type memGateway struct {
	mu    *sync.Mutex
	st    *memState
	bound bool

	createUserErr     error
	createCustomerErr error
	sessionErr        error
	listErr           error
	lastFilter        *store.RestaurantFilter
}

var _ store.Gateway = (*memGateway)(nil)

func newMemGateway() *memGateway {
	return &memGateway{
		mu: &sync.Mutex{},
		st: &memState{
			users:       map[uuid.UUID]model.User{},
			customers:   map[uuid.UUID]model.Customer{},
			restaurants: map[uuid.UUID]model.Restaurant{},
		},
		lastFilter: &store.RestaurantFilter{},
	}
}

func (g *memGateway) WithTx(ctx context.Context, fn func(tx store.Gateway) error) error {
	if g.bound {
		return fn(g)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := g.st.clone()
	tx := *g
	tx.bound = true
	if err := fn(&tx); err != nil {
		*g.st = *snap
		return err
	}
	return nil
}

func (g *memGateway) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := g.st.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (g *memGateway) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range g.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (g *memGateway) CreateUser(_ context.Context, u *model.User) error {
	if g.createUserErr != nil {
		return g.createUserErr
	}
	for _, existing := range g.st.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	g.st.users[u.ID] = *u
	g.st.writes++
	return nil
}

func (g *memGateway) UpdateUserSession(_ context.Context, id uuid.UUID, session string, expiry time.Time) error {
	if g.sessionErr != nil {
		return g.sessionErr
	}
	u, ok := g.st.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Session = &session
	u.SessionExpiry = &expiry
	g.st.users[id] = u
	g.st.writes++
	return nil
}

func (g *memGateway) ClearExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, u := range g.st.users {
		if u.SessionExpiry != nil && u.SessionExpiry.Before(now) {
			u.Session = nil
			u.SessionExpiry = nil
			g.st.users[id] = u
			n++
		}
	}
	return n, nil
}

func (g *memGateway) GetCustomerByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := g.st.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (g *memGateway) GetCustomerByEmail(_ context.Context, email string) (*model.Customer, error) {
	for _, c := range g.st.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (g *memGateway) CreateCustomer(_ context.Context, c *model.Customer) error {
	if g.createCustomerErr != nil {
		return g.createCustomerErr
	}
	if _, ok := g.st.customers[c.ID]; ok {
		return store.ErrDuplicate
	}
	c.CreatedAt = time.Now()
	g.st.customers[c.ID] = *c
	g.st.writes++
	return nil
}

func (g *memGateway) CreateRestaurant(_ context.Context, r *model.Restaurant) error {
	now := time.Now()
	r.StatusChangedAt = now
	r.CreatedAt = now
	r.UpdatedAt = now
	g.st.restaurants[r.ID] = *r
	g.st.writes++
	return nil
}

func (g *memGateway) GetRestaurantByID(_ context.Context, id uuid.UUID) (*model.Restaurant, error) {
	r, ok := g.st.restaurants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (g *memGateway) LockRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	return g.GetRestaurantByID(ctx, id)
}

func (g *memGateway) LockRestaurantWithStatus(_ context.Context, id uuid.UUID, status model.RestaurantStatus) (*model.Restaurant, error) {
	r, ok := g.st.restaurants[id]
	if !ok || r.Status != status {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (g *memGateway) UpdateRestaurant(_ context.Context, r *model.Restaurant) error {
	if _, ok := g.st.restaurants[r.ID]; !ok {
		return store.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	g.st.restaurants[r.ID] = *r
	g.st.writes++
	return nil
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (g *memGateway) ListRestaurants(_ context.Context, f store.RestaurantFilter) ([]model.Restaurant, int, error) {
	*g.lastFilter = f
	if g.listErr != nil {
		return nil, 0, g.listErr
	}

	matched := []model.Restaurant{}
	for _, r := range g.st.restaurants {
		visible := false
		for _, s := range f.Statuses {
			if r.Status == s {
				visible = true
			}
		}
		if !visible && f.InactiveSince != nil && r.Status == model.RestaurantInactive && !r.StatusChangedAt.Before(*f.InactiveSince) {
			visible = true
		}
		if !visible || !containsFold(r.Name, f.Name) || !containsFold(r.Location, f.Location) || !containsFold(r.Phone, f.Phone) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	if f.Offset >= total {
		return []model.Restaurant{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}
