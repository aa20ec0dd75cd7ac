package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/utils"
)

// Memory is a mutex-guarded in-memory Store. It backs the handler tests
// and `MONGODB_URI=memory` local runs; nothing survives a restart.
type Memory struct {
	mu         sync.RWMutex
	users      map[primitive.ObjectID]models.User
	products   map[primitive.ObjectID]models.Product
	categories map[primitive.ObjectID]models.Category
	orders     map[primitive.ObjectID]models.Order
	orderSeq   []primitive.ObjectID // creation order, oldest first
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[primitive.ObjectID]models.User),
		products:   make(map[primitive.ObjectID]models.Product),
		categories: make(map[primitive.ObjectID]models.Category),
		orders:     make(map[primitive.ObjectID]models.Order),
	}
}

// -------- Users --------

func (s *Memory) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	out.Password = ""
	return &out, nil
}

func (s *Memory) UsersByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			u.Password = ""
			out[id] = u
		}
	}
	return out, nil
}

func (s *Memory) SaveCart(_ context.Context, userID primitive.ObjectID, cart []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Cart = append([]models.CartItem(nil), cart...)
	u.UpdatedAt = time.Now()
	s.users[userID] = u
	return nil
}

func (s *Memory) SaveWishlist(_ context.Context, userID primitive.ObjectID, wishlist []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Wishlist = append([]primitive.ObjectID(nil), wishlist...)
	u.UpdatedAt = time.Now()
	s.users[userID] = u
	return nil
}

// -------- Products --------

func (s *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Memory) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.products[p.ID] = *p
	return nil
}

func (s *Memory) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Memory) ProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (s *Memory) ProductsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *Memory) ListProducts(_ context.Context, q utils.ProductQuery) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var catID primitive.ObjectID
	if q.Category != "" {
		var err error
		catID, err = primitive.ObjectIDFromHex(q.Category)
		if err != nil {
			return nil, 0, ErrInvalidID
		}
	}

	needle := strings.ToLower(q.Search)
	var matched []models.Product
	for _, p := range s.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if q.Category != "" && p.Category != catID {
			continue
		}
		matched = append(matched, p)
	}

	fields := utils.ParseSort(q.Sort)
	sort.SliceStable(matched, func(i, j int) bool {
		for _, f := range fields {
			c := compareProducts(matched[i], matched[j], f.Name)
			if c == 0 {
				continue
			}
			if f.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	total := int64(len(matched))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return append([]models.Product(nil), matched[start:end]...), total, nil
}

func compareProducts(a, b models.Product, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "slug":
		return strings.Compare(a.Slug, b.Slug)
	case "price":
		return compareFloat(a.Price, b.Price)
	case "stock":
		return compareFloat(float64(a.Stock), float64(b.Stock))
	case "updatedAt":
		return compareTimes(a.UpdatedAt, b.UpdatedAt)
	default: // createdAt and anything unknown
		return compareTimes(a.CreatedAt, b.CreatedAt)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (s *Memory) AllProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Memory) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return nil
}

// -------- Categories --------

func (s *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *Memory) UpdateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	s.categories[c.ID] = *c
	return nil
}

func (s *Memory) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Memory) CategoryByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := c
	return &out, nil
}

func (s *Memory) CategoriesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]models.Category, len(ids))
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (s *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// -------- Orders --------

func (s *Memory) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = *o
	s.orderSeq = append(s.orderSeq, o.ID)
	return nil
}

func (s *Memory) OrdersByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for i := len(s.orderSeq) - 1; i >= 0; i-- {
		o, ok := s.orders[s.orderSeq[i]]
		if ok && o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Memory) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for i := len(s.orderSeq) - 1; i >= 0; i-- {
		if o, ok := s.orders[s.orderSeq[i]]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Memory) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	out := o
	return &out, nil
}
