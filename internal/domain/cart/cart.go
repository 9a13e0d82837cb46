package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")
)

// MaxLineQuantity bounds the units a single line may hold.
const MaxLineQuantity = 999

// Catalog is the part of the catalog a cart needs to price its lines.
type Catalog interface {
	GetShoe(ctx context.Context, id int64) (*catalog.Shoe, error)
	GetShoeSize(ctx context.Context, shoeID int64, size float64) (*catalog.ShoeSize, error)
}

// Line is one stored cart entry. Price is a cache slot kept for the
// stored format; pricing always uses the live catalog price.
type Line struct {
	ShoeID   int64           `json:"shoe_id"`
	Size     float64         `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Item is a cart line resolved against the catalog.
type Item struct {
	Shoe       *catalog.Shoe    `json:"shoe"`
	Size       catalog.ShoeSize `json:"size"`
	Quantity   int              `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// Cart maps "{shoe_id}_{size}" keys to lines. The zero value is an empty cart.
type Cart struct {
	lines map[string]Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]Line)}
}

// Key builds the line key, e.g. Key(5, 42) == "5_42.0".
func Key(shoeID int64, size float64) string {
	return strconv.FormatInt(shoeID, 10) + "_" + catalog.FormatSize(size)
}

// Add increases the quantity of the (shoe, size) line, creating it if needed.
// Stock is not checked here. An add that would push the line past
// MaxLineQuantity is rejected and leaves the line unchanged.
func (c *Cart) Add(shoeID int64, size float64, quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if c.lines == nil {
		c.lines = make(map[string]Line)
	}

	key := Key(shoeID, size)
	line, ok := c.lines[key]
	if !ok {
		line = Line{ShoeID: shoeID, Size: size, Price: decimal.Zero}
	}
	if line.Quantity > MaxLineQuantity-quantity {
		return ErrInvalidQuantity
	}
	line.Quantity += quantity
	c.lines[key] = line
	return nil
}

// Remove deletes the line if present and reports whether it existed.
func (c *Cart) Remove(shoeID int64, size float64) bool {
	key := Key(shoeID, size)
	if _, ok := c.lines[key]; !ok {
		return false
	}
	delete(c.lines, key)
	return true
}

func (c *Cart) Clear() {
	c.lines = make(map[string]Line)
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Quantity is the total number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Line returns the stored line for (shoe, size).
func (c *Cart) Line(shoeID int64, size float64) (Line, bool) {
	l, ok := c.lines[Key(shoeID, size)]
	return l, ok
}

// Lines returns the stored lines ordered by shoe id, then size.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShoeID != out[j].ShoeID {
			return out[i].ShoeID < out[j].ShoeID
		}
		return out[i].Size < out[j].Size
	})
	return out
}

// Items resolves every line against the catalog. Lines whose shoe or
// size no longer exists are skipped and left in the cart untouched.
func (c *Cart) Items(ctx context.Context, cat Catalog) ([]Item, error) {
	items := make([]Item, 0, len(c.lines))
	for _, l := range c.Lines() {
		shoe, err := cat.GetShoe(ctx, l.ShoeID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve shoe %d: %w", l.ShoeID, err)
		}

		size, err := cat.GetShoeSize(ctx, l.ShoeID, l.Size)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve size %s of shoe %d: %w", catalog.FormatSize(l.Size), l.ShoeID, err)
		}

		items = append(items, Item{
			Shoe:       shoe,
			Size:       *size,
			Quantity:   l.Quantity,
			Price:      shoe.Price,
			TotalPrice: shoe.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	return items, nil
}

// TotalPrice sums the line totals of the resolvable items.
func (c *Cart) TotalPrice(ctx context.Context, cat Catalog) (decimal.Decimal, error) {
	items, err := c.Items(ctx, cat)
	if err != nil {
		return decimal.Zero, err
	}
	return Sum(items), nil
}

// Sum adds up the totals of already resolved items.
func Sum(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	lines := make(map[string]Line)
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}
