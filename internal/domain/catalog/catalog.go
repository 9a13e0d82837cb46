package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")
)

// Gender is the target audience code stored on a shoe.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Men's"
	case GenderFemale:
		return "Women's"
	case GenderUnisex:
		return "Unisex"
	}
	return string(g)
}

// Season is the wearing season code stored on a shoe.
type Season string

const (
	SeasonWinter    Season = "W"
	SeasonSummer    Season = "S"
	SeasonDemi      Season = "D"
	SeasonAllSeason Season = "A"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSummer, SeasonDemi, SeasonAllSeason:
		return true
	}
	return false
}

func (s Season) Label() string {
	switch s {
	case SeasonWinter:
		return "Winter"
	case SeasonSummer:
		return "Summer"
	case SeasonDemi:
		return "Demi-season"
	case SeasonAllSeason:
		return "All-season"
	}
	return string(s)
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

type Brand struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Country string `db:"country" json:"country"`
}

type Shoe struct {
	ID             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	BrandID        int64           `db:"brand_id" json:"brand_id"`
	CategoryID     int64           `db:"category_id" json:"category_id"`
	Gender         Gender          `db:"gender" json:"gender"`
	Season         Season          `db:"season" json:"season"`
	MaterialUpper  string          `db:"material_upper" json:"material_upper"`
	MaterialInsole string          `db:"material_insole" json:"material_insole"`
	MaterialSole   string          `db:"material_outsole" json:"material_outsole"`
	HeelHeightCm   *float64        `db:"heel_height_cm" json:"heel_height_cm,omitempty"`
	IsWaterproof   bool            `db:"is_waterproof" json:"is_waterproof"`
	Price          decimal.Decimal `db:"price" json:"price"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`

	Brand    Brand      `db:"brand" json:"brand"`
	Category Category   `db:"category" json:"category"`
	Sizes    []ShoeSize `db:"-" json:"sizes,omitempty"`
}

// String returns the display name, brand first.
func (s Shoe) String() string {
	return s.Brand.Name + " " + s.Name
}

// AvailableSizes returns the sizes that currently have stock.
func (s Shoe) AvailableSizes() []ShoeSize {
	out := make([]ShoeSize, 0, len(s.Sizes))
	for _, sz := range s.Sizes {
		if sz.InStock() {
			out = append(out, sz)
		}
	}
	return out
}

type ShoeSize struct {
	ID     int64   `db:"id" json:"id"`
	ShoeID int64   `db:"shoe_id" json:"shoe_id"`
	Size   float64 `db:"size" json:"size"`
	Stock  int     `db:"stock" json:"stock"`
}

func (s ShoeSize) InStock() bool {
	return s.Stock > 0
}

// Repository is the read side of the catalog consumed by the storefront.
type Repository interface {
	ListShoes(ctx context.Context, f Filter, page int) (*Page, error)
	LatestShoes(ctx context.Context, f Filter, limit int) ([]Shoe, error)
	GetShoe(ctx context.Context, id int64) (*Shoe, error)
	GetShoeSize(ctx context.Context, shoeID int64, size float64) (*ShoeSize, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListBrands(ctx context.Context) ([]Brand, error)
}
