package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemStore keeps products in insertion order. Ids come from a counter that
// only grows, so an id freed by Delete is never handed out again.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
	nextID   int64
}

func NewMemStore(seed []Product) *MemStore {
	s := &MemStore{
		products: make([]Product, 0, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		s.products = append(s.products, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func NewStore() Store {
	return NewMemStore(SeedProducts())
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) Page(ctx context.Context, req PageRequest) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paginate(s.products, req)
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func (s *MemStore) Create(ctx context.Context, in ProductInput) (Product, error) {
	if in.Name == "" || in.Price == 0 || in.Description == "" {
		return Product{}, fmt.Errorf("name, price and description are required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:          s.nextID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	s.nextID++
	s.products = append(s.products, p)
	return p, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	p := &s.products[i]
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Price != 0 {
		p.Price = in.Price
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	return *p, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	p := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return p, nil
}

func (s *MemStore) Search(ctx context.Context, query string) ([]Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("search query is required: %w", ErrValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, 8)
	for _, p := range s.products {
		if matches(p, needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// indexOf must be called with s.mu held.
func (s *MemStore) indexOf(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
