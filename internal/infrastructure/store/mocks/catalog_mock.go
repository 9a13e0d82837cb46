package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/shoe-store/internal/domain/catalog"
)

// MockCatalog is a mock implementation of catalog.Repository for testing
type MockCatalog struct {
	mu    sync.RWMutex
	shoes map[int64]catalog.Shoe

	// Errors returned instead of data when set
	Err        error
	GetShoeErr error

	// For tracking calls in tests
	ListShoesCalls   []ListShoesCall
	LatestShoesCalls []LatestShoesCall
	GetShoeCalls     []int64
	GetShoeSizeCalls []GetShoeSizeCall
}

// ListShoesCall records parameters passed to ListShoes
type ListShoesCall struct {
	Filter catalog.Filter
	Page   int
}

// LatestShoesCall records parameters passed to LatestShoes
type LatestShoesCall struct {
	Filter catalog.Filter
	Limit  int
}

// GetShoeSizeCall records parameters passed to GetShoeSize
type GetShoeSizeCall struct {
	ShoeID int64
	Size   float64
}

// NewMockCatalog creates a new MockCatalog
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{shoes: make(map[int64]catalog.Shoe)}
}

// AddShoe stores a shoe together with its Sizes
func (m *MockCatalog) AddShoe(s catalog.Shoe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shoes[s.ID] = s
}

// RemoveShoe deletes a shoe and its sizes
func (m *MockCatalog) RemoveShoe(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.shoes, id)
}

func (m *MockCatalog) sorted() []catalog.Shoe {
	out := make([]catalog.Shoe, 0, len(m.shoes))
	for _, s := range m.shoes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListShoes returns every stored shoe on one page; the filter is only recorded
func (m *MockCatalog) ListShoes(ctx context.Context, f catalog.Filter, page int) (*catalog.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListShoesCalls = append(m.ListShoesCalls, ListShoesCall{Filter: f, Page: page})
	if m.Err != nil {
		return nil, m.Err
	}
	shoes := m.sorted()
	return catalog.NewPage(catalog.ClampPage(page, len(shoes)), len(shoes), shoes), nil
}

// LatestShoes returns up to limit stored shoes; the filter is only recorded
func (m *MockCatalog) LatestShoes(ctx context.Context, f catalog.Filter, limit int) ([]catalog.Shoe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LatestShoesCalls = append(m.LatestShoesCalls, LatestShoesCall{Filter: f, Limit: limit})
	if m.Err != nil {
		return nil, m.Err
	}
	shoes := m.sorted()
	if limit > 0 && len(shoes) > limit {
		shoes = shoes[:limit]
	}
	return shoes, nil
}

func (m *MockCatalog) GetShoe(ctx context.Context, id int64) (*catalog.Shoe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetShoeCalls = append(m.GetShoeCalls, id)
	if m.GetShoeErr != nil {
		return nil, m.GetShoeErr
	}
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.shoes[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &s, nil
}

func (m *MockCatalog) GetShoeSize(ctx context.Context, shoeID int64, size float64) (*catalog.ShoeSize, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetShoeSizeCalls = append(m.GetShoeSizeCalls, GetShoeSizeCall{ShoeID: shoeID, Size: size})
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.shoes[shoeID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	for _, sz := range s.Sizes {
		if sz.Size == size {
			return &sz, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[int64]bool{}
	out := []catalog.Category{}
	for _, s := range m.sorted() {
		if !seen[s.Category.ID] {
			seen[s.Category.ID] = true
			out = append(out, s.Category)
		}
	}
	return out, nil
}

func (m *MockCatalog) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[int64]bool{}
	out := []catalog.Brand{}
	for _, s := range m.sorted() {
		if !seen[s.Brand.ID] {
			seen[s.Brand.ID] = true
			out = append(out, s.Brand)
		}
	}
	return out, nil
}
