package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/shoe-store/internal/domain/catalog"
)

var (
	ErrDuplicateSlug = errors.New("category slug already exists")
	ErrDuplicateSize = errors.New("size already exists for shoe")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// MemoryCatalogStore is an in-process catalog.Repository. It enforces the
// same constraints as the relational schema, including delete cascades.
type MemoryCatalogStore struct {
	mu         sync.RWMutex
	categories map[int64]catalog.Category
	brands     map[int64]catalog.Brand
	shoes      map[int64]catalog.Shoe
	sizes      map[int64][]catalog.ShoeSize // shoe id -> sizes
	nextID     int64
	now        func() time.Time
}

func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{
		categories: make(map[int64]catalog.Category),
		brands:     make(map[int64]catalog.Brand),
		shoes:      make(map[int64]catalog.Shoe),
		sizes:      make(map[int64][]catalog.ShoeSize),
		now:        time.Now,
	}
}

func (m *MemoryCatalogStore) id(explicit int64) int64 {
	if explicit != 0 {
		if explicit > m.nextID {
			m.nextID = explicit
		}
		return explicit
	}
	m.nextID++
	return m.nextID
}

func (m *MemoryCatalogStore) AddCategory(c catalog.Category) (catalog.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == c.Slug {
			return catalog.Category{}, fmt.Errorf("%w: %s", ErrDuplicateSlug, c.Slug)
		}
	}
	c.ID = m.id(c.ID)
	m.categories[c.ID] = c
	return c, nil
}

func (m *MemoryCatalogStore) AddBrand(b catalog.Brand) (catalog.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = m.id(b.ID)
	m.brands[b.ID] = b
	return b, nil
}

// AddShoe stores a shoe. CreatedAt is set on insert when left zero.
func (m *MemoryCatalogStore) AddShoe(s catalog.Shoe) (catalog.Shoe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Price.IsNegative() {
		return catalog.Shoe{}, ErrNegativePrice
	}
	if _, ok := m.brands[s.BrandID]; !ok {
		return catalog.Shoe{}, fmt.Errorf("brand %d: %w", s.BrandID, catalog.ErrNotFound)
	}
	if _, ok := m.categories[s.CategoryID]; !ok {
		return catalog.Shoe{}, fmt.Errorf("category %d: %w", s.CategoryID, catalog.ErrNotFound)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}

	s.ID = m.id(s.ID)
	s.Brand = catalog.Brand{}
	s.Category = catalog.Category{}
	s.Sizes = nil
	m.shoes[s.ID] = s
	return m.hydrate(s), nil
}

func (m *MemoryCatalogStore) AddShoeSize(sz catalog.ShoeSize) (catalog.ShoeSize, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sz.Stock < 0 {
		return catalog.ShoeSize{}, ErrNegativeStock
	}
	if _, ok := m.shoes[sz.ShoeID]; !ok {
		return catalog.ShoeSize{}, fmt.Errorf("shoe %d: %w", sz.ShoeID, catalog.ErrNotFound)
	}
	for _, existing := range m.sizes[sz.ShoeID] {
		if existing.Size == sz.Size {
			return catalog.ShoeSize{}, fmt.Errorf("%w: %s", ErrDuplicateSize, catalog.FormatSize(sz.Size))
		}
	}

	sz.ID = m.id(sz.ID)
	m.sizes[sz.ShoeID] = append(m.sizes[sz.ShoeID], sz)
	return sz, nil
}

// SetStock overwrites the stock of an existing size row.
func (m *MemoryCatalogStore) SetStock(shoeID int64, size float64, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stock < 0 {
		return ErrNegativeStock
	}
	sizes := m.sizes[shoeID]
	for i := range sizes {
		if sizes[i].Size == size {
			sizes[i].Stock = stock
			return nil
		}
	}
	return catalog.ErrNotFound
}

// DeleteShoe removes a shoe together with its sizes.
func (m *MemoryCatalogStore) DeleteShoe(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteShoe(id)
}

func (m *MemoryCatalogStore) deleteShoe(id int64) {
	delete(m.shoes, id)
	delete(m.sizes, id)
}

// DeleteBrand removes a brand and every shoe of that brand.
func (m *MemoryCatalogStore) DeleteBrand(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.brands, id)
	for sid, s := range m.shoes {
		if s.BrandID == id {
			m.deleteShoe(sid)
		}
	}
}

// DeleteCategory removes a category and every shoe in it.
func (m *MemoryCatalogStore) DeleteCategory(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.categories, id)
	for sid, s := range m.shoes {
		if s.CategoryID == id {
			m.deleteShoe(sid)
		}
	}
}

func (m *MemoryCatalogStore) hydrate(s catalog.Shoe) catalog.Shoe {
	s.Brand = m.brands[s.BrandID]
	s.Category = m.categories[s.CategoryID]
	return s
}

func (m *MemoryCatalogStore) matches(f catalog.Filter, s catalog.Shoe) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		brand := m.brands[s.BrandID]
		if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(brand.Name), q) {
			return false
		}
	}
	if f.Gender != "" && s.Gender != f.Gender {
		return false
	}
	if f.Season != "" && s.Season != f.Season {
		return false
	}
	if f.Size != nil && !m.availableIn(s.ID, *f.Size) {
		return false
	}
	if f.CategoryID != nil && s.CategoryID != *f.CategoryID {
		return false
	}
	if f.BrandID != nil && s.BrandID != *f.BrandID {
		return false
	}
	return true
}

func (m *MemoryCatalogStore) availableIn(shoeID int64, size float64) bool {
	for _, sz := range m.sizes[shoeID] {
		if sz.Size == size && sz.InStock() {
			return true
		}
	}
	return false
}

func (m *MemoryCatalogStore) filter(f catalog.Filter) []catalog.Shoe {
	out := make([]catalog.Shoe, 0)
	for _, s := range m.shoes {
		if m.matches(f, s) {
			out = append(out, m.hydrate(s))
		}
	}
	return out
}

func (m *MemoryCatalogStore) ListShoes(ctx context.Context, f catalog.Filter, page int) (*catalog.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shoes := m.filter(f)
	sort.Slice(shoes, func(i, j int) bool { return shoes[i].ID < shoes[j].ID })

	number := catalog.ClampPage(page, len(shoes))
	start := catalog.Offset(number)
	end := min(start+catalog.PageSize, len(shoes))
	if start > end {
		start = end
	}
	return catalog.NewPage(number, len(shoes), shoes[start:end]), nil
}

func (m *MemoryCatalogStore) LatestShoes(ctx context.Context, f catalog.Filter, limit int) ([]catalog.Shoe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shoes := m.filter(f)
	sort.Slice(shoes, func(i, j int) bool {
		if !shoes[i].CreatedAt.Equal(shoes[j].CreatedAt) {
			return shoes[i].CreatedAt.After(shoes[j].CreatedAt)
		}
		return shoes[i].ID > shoes[j].ID
	})
	if limit > 0 && len(shoes) > limit {
		shoes = shoes[:limit]
	}
	return shoes, nil
}

func (m *MemoryCatalogStore) GetShoe(ctx context.Context, id int64) (*catalog.Shoe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shoes[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	s = m.hydrate(s)
	s.Sizes = append([]catalog.ShoeSize(nil), m.sizes[id]...)
	sort.Slice(s.Sizes, func(i, j int) bool { return s.Sizes[i].Size < s.Sizes[j].Size })
	return &s, nil
}

func (m *MemoryCatalogStore) GetShoeSize(ctx context.Context, shoeID int64, size float64) (*catalog.ShoeSize, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sz := range m.sizes[shoeID] {
		if sz.Size == size {
			return &sz, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *MemoryCatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]catalog.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryCatalogStore) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]catalog.Brand, 0, len(m.brands))
	for _, b := range m.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
