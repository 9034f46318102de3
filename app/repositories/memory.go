package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/decorhub/app/models"
)

// NewMemoryStore returns process-local repositories. Documents are kept in
// insertion order, like a collection scan without a sort.
func NewMemoryStore() Store {
	return Store{
		Users:    &MemoryUsers{},
		Services: &MemoryServices{},
		Orders:   &MemoryOrders{},
		Ping:     func(context.Context) error { return nil },
	}
}

// MemoryUsers implements UserRepository in memory.
type MemoryUsers struct {
	mu   sync.RWMutex
	docs []models.User
}

func (r *MemoryUsers) InsertIfAbsent(_ context.Context, u *models.User) (InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.docs {
		if d.Email == u.Email {
			return InsertResult{ID: d.ID.Hex()}, nil
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.docs = append(r.docs, *u)
	return InsertResult{ID: u.ID.Hex(), Created: true}, nil
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.docs {
		if d.Email == email {
			u := d
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) List(_ context.Context, f UserFilter) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0)
	for _, d := range r.docs {
		switch {
		case f.Role != "" && d.Role != f.Role:
			continue
		case f.Role == "" && f.RoleNot != "" && d.Role == f.RoleNot:
			continue
		case f.AccountStatus != "" && d.AccountStatus != f.AccountStatus:
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *MemoryUsers) TouchLastLogin(_ context.Context, email string, at time.Time) (UpdateResult, error) {
	return r.update(func(u *models.User) bool { return u.Email == email }, func(u *models.User) bool {
		changed := !u.LastLogin.Equal(at)
		u.LastLogin = at
		return changed
	}), nil
}

func (r *MemoryUsers) SetAccountStatus(_ context.Context, id, status string) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return r.update(func(u *models.User) bool { return u.ID == oid }, func(u *models.User) bool {
		changed := u.AccountStatus != status
		u.AccountStatus = status
		return changed
	}), nil
}

func (r *MemoryUsers) SetRole(_ context.Context, id, role string) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return r.update(func(u *models.User) bool { return u.ID == oid }, setRole(role)), nil
}

func (r *MemoryUsers) SetRoleByEmail(_ context.Context, email, role string) (UpdateResult, error) {
	return r.update(func(u *models.User) bool { return u.Email == email }, setRole(role)), nil
}

func (r *MemoryUsers) Delete(_ context.Context, id string) (DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return DeleteResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.docs {
		if d.ID == oid {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return DeleteResult{Deleted: 1}, nil
		}
	}
	return DeleteResult{}, nil
}

func (r *MemoryUsers) update(match func(*models.User) bool, apply func(*models.User) bool) UpdateResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.docs {
		if match(&r.docs[i]) {
			res := UpdateResult{Matched: 1}
			if apply(&r.docs[i]) {
				res.Modified = 1
			}
			return res
		}
	}
	return UpdateResult{}
}

func setRole(role string) func(*models.User) bool {
	return func(u *models.User) bool {
		changed := u.Role != role
		u.Role = role
		return changed
	}
}

// MemoryServices implements ServiceRepository in memory.
type MemoryServices struct {
	mu   sync.RWMutex
	docs []models.Service
}

func (r *MemoryServices) Insert(_ context.Context, s *models.Service) (InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.docs = append(r.docs, *s)
	return InsertResult{ID: s.ID.Hex(), Created: true}, nil
}

func (r *MemoryServices) Update(_ context.Context, id string, c models.ServiceChanges) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID != oid {
			continue
		}
		// updatedAt always changes, so a matched update always modifies.
		d := &r.docs[i]
		at := c.UpdatedAt
		d.ServiceName, d.Cost, d.Unit, d.Image = c.ServiceName, c.Cost, c.Unit, c.Image
		d.Category, d.Description, d.CreatedBy, d.UpdatedAt = c.Category, c.Description, c.CreatedBy, &at
		return UpdateResult{Matched: 1, Modified: 1}, nil
	}
	return UpdateResult{}, nil
}

func (r *MemoryServices) List(context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]models.Service, 0, len(r.docs)), r.docs...), nil
}

func (r *MemoryServices) FindByID(_ context.Context, id string) (*models.Service, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d.ID == oid {
			s := d
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryOrders implements OrderRepository in memory.
type MemoryOrders struct {
	mu   sync.RWMutex
	docs []models.Order
}

func (r *MemoryOrders) InsertIfAbsent(_ context.Context, o *models.Order) (InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.docs {
		if d.TransactionID == o.TransactionID {
			return InsertResult{ID: d.ID.Hex()}, nil
		}
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.docs = append(r.docs, *o)
	return InsertResult{ID: o.ID.Hex(), Created: true}, nil
}

func (r *MemoryOrders) List(_ context.Context, f OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, d := range r.docs {
		if matchOrder(d, f) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *MemoryOrders) Assign(_ context.Context, id, decoratorEmail string) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return r.update(oid, "", func(o *models.Order) bool {
		changed := o.AssignedDecoratorEmail != decoratorEmail || o.Status != models.OrderAssigned
		o.AssignedDecoratorEmail = decoratorEmail
		o.Status = models.OrderAssigned
		return changed
	}), nil
}

func (r *MemoryOrders) UpdateStatus(_ context.Context, id, decoratorEmail, status string) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return r.update(oid, decoratorEmail, func(o *models.Order) bool {
		changed := o.Status != status
		o.Status = status
		return changed
	}), nil
}

func (r *MemoryOrders) Delete(_ context.Context, id, customerEmail string) (DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return DeleteResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.docs {
		if d.ID == oid && (customerEmail == "" || d.CustomerEmail == customerEmail) {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return DeleteResult{Deleted: 1}, nil
		}
	}
	return DeleteResult{}, nil
}

func (r *MemoryOrders) MonthlyRevenue(context.Context) ([]MonthTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[int]float64)
	for _, d := range r.docs {
		m := int(time.Unix(d.CreatedAt, 0).UTC().Month())
		sums[m] += d.Price
	}
	out := make([]MonthTotal, 0, len(sums))
	for m, v := range sums {
		out = append(out, MonthTotal{Month: m, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *MemoryOrders) CategoryDemand(context.Context) ([]CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, d := range r.docs {
		counts[d.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Bookings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *MemoryOrders) update(oid primitive.ObjectID, decoratorEmail string, apply func(*models.Order) bool) UpdateResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.docs {
		d := &r.docs[i]
		if d.ID != oid || (decoratorEmail != "" && d.AssignedDecoratorEmail != decoratorEmail) {
			continue
		}
		res := UpdateResult{Matched: 1}
		if apply(d) {
			res.Modified = 1
		}
		return res
	}
	return UpdateResult{}
}

func matchOrder(o models.Order, f OrderFilter) bool {
	switch {
	case f.Status != "" && o.Status != f.Status:
		return false
	case f.Status == "" && f.StatusNot != "" && o.Status == f.StatusNot:
		return false
	case f.CustomerEmail != "" && o.CustomerEmail != f.CustomerEmail:
		return false
	case f.AssignedDecoratorEmail != "" && o.AssignedDecoratorEmail != f.AssignedDecoratorEmail:
		return false
	case f.ServiceDate != "" && o.ServiceDate != f.ServiceDate:
		return false
	}
	return true
}
