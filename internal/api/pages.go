package api

import (
	"github.com/example/shoe-store/internal/domain/cart"
	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/example/shoe-store/internal/domain/user"
	"github.com/example/shoe-store/internal/session"
	"github.com/shopspring/decimal"
)

// Layout is shared by every page.
type Layout struct {
	Username  string          `json:"username,omitempty"`
	Messages  []session.Flash `json:"messages,omitempty"`
	CartCount int             `json:"cart_count"`
}

type HomePage struct {
	Layout
	LatestShoes []catalog.Shoe `json:"latest_shoes"`
	WinterShoes []catalog.Shoe `json:"winter_shoes"`
	SummerShoes []catalog.Shoe `json:"summer_shoes"`
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	genderChoices = []Choice{
		{string(catalog.GenderMale), catalog.GenderMale.Label()},
		{string(catalog.GenderFemale), catalog.GenderFemale.Label()},
		{string(catalog.GenderUnisex), catalog.GenderUnisex.Label()},
	}
	seasonChoices = []Choice{
		{string(catalog.SeasonWinter), catalog.SeasonWinter.Label()},
		{string(catalog.SeasonSummer), catalog.SeasonSummer.Label()},
		{string(catalog.SeasonDemi), catalog.SeasonDemi.Label()},
		{string(catalog.SeasonAllSeason), catalog.SeasonAllSeason.Label()},
	}
)

// CatalogPage echoes the raw filter values so the form keeps its state.
type CatalogPage struct {
	Layout
	Page       *catalog.Page      `json:"page"`
	Categories []catalog.Category `json:"categories"`
	Brands     []catalog.Brand    `json:"brands"`
	Genders    []Choice           `json:"-"`
	Seasons    []Choice           `json:"-"`

	SearchQuery      string `json:"search_query"`
	SelectedGender   string `json:"selected_gender"`
	SelectedSeason   string `json:"selected_season"`
	SelectedSize     string `json:"selected_size"`
	SelectedCategory string `json:"selected_category"`
	SelectedBrand    string `json:"selected_brand"`

	// FilterQuery is the encoded filter part of the query string, used
	// by the pager.
	FilterQuery string `json:"-"`
}

type ShoeDetailPage struct {
	Layout
	Shoe           *catalog.Shoe      `json:"shoe"`
	AvailableSizes []catalog.ShoeSize `json:"available_sizes"`
}

type CartPage struct {
	Layout
	Items      []cart.Item     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// RegisterPage redisplays the submitted values next to the field errors.
type RegisterPage struct {
	Layout
	FormUsername string          `json:"form_username"`
	FormEmail    string          `json:"form_email"`
	Errors       user.FormErrors `json:"errors,omitempty"`
}

type LoginPage struct {
	Layout
	FormUsername string `json:"form_username"`
}

type NotFoundPage struct {
	Layout
	Message string `json:"error"`
}
