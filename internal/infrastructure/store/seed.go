package store

import (
	"time"

	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

type demoShoe struct {
	name     string
	brand    string
	category string
	gender   catalog.Gender
	season   catalog.Season
	upper    string
	price    string
	heel     *float64
	wp       bool
	sizes    map[float64]int
}

func heel(cm float64) *float64 { return &cm }

// SeedDemoCatalog fills an empty memory store with a small assortment
// for local runs.
func SeedDemoCatalog(m *MemoryCatalogStore) error {
	categories := map[string]catalog.Category{}
	for _, c := range []catalog.Category{
		{Name: "Sneakers", Slug: "sneakers"},
		{Name: "Boots", Slug: "boots"},
		{Name: "Sandals", Slug: "sandals"},
		{Name: "Loafers", Slug: "loafers"},
	} {
		stored, err := m.AddCategory(c)
		if err != nil {
			return err
		}
		categories[c.Slug] = stored
	}

	brands := map[string]catalog.Brand{}
	for _, b := range []catalog.Brand{
		{Name: "Nike", Country: "USA"},
		{Name: "Ecco", Country: "Denmark"},
		{Name: "Birkenstock", Country: "Germany"},
		{Name: "Rendez-Vous", Country: ""},
	} {
		stored, err := m.AddBrand(b)
		if err != nil {
			return err
		}
		brands[b.Name] = stored
	}

	shoes := []demoShoe{
		{"Air Max 90", "Nike", "sneakers", catalog.GenderUnisex, catalog.SeasonAllSeason, "Leather", "12990.00", nil, false, map[float64]int{40: 3, 41: 5, 42: 2, 43: 0}},
		{"Pegasus Trail", "Nike", "sneakers", catalog.GenderMale, catalog.SeasonDemi, "Textile", "10490.00", nil, true, map[float64]int{42: 4, 43: 1, 44: 2}},
		{"Track 25", "Ecco", "boots", catalog.GenderMale, catalog.SeasonWinter, "Nubuck", "21990.00", heel(3), true, map[float64]int{41: 2, 42: 0, 43: 1}},
		{"Modtray", "Ecco", "boots", catalog.GenderFemale, catalog.SeasonWinter, "Suede", "18490.00", heel(4.5), true, map[float64]int{36: 1, 37: 3, 38: 2}},
		{"Arizona", "Birkenstock", "sandals", catalog.GenderUnisex, catalog.SeasonSummer, "Birko-Flor", "7990.00", nil, false, map[float64]int{37: 4, 38.5: 2, 40: 6, 42: 3}},
		{"Gizeh", "Birkenstock", "sandals", catalog.GenderFemale, catalog.SeasonSummer, "Leather", "8490.00", nil, false, map[float64]int{36: 2, 37: 0, 38: 5}},
		{"Milano", "Birkenstock", "sandals", catalog.GenderMale, catalog.SeasonSummer, "Leather", "9290.00", nil, false, map[float64]int{42: 1, 43: 2, 44: 1}},
		{"Chelsea Classic", "Rendez-Vous", "boots", catalog.GenderFemale, catalog.SeasonDemi, "Leather", "11990.00", heel(5), false, map[float64]int{37: 2, 38: 2, 39: 1}},
		{"Penny Loafer", "Rendez-Vous", "loafers", catalog.GenderMale, catalog.SeasonAllSeason, "Leather", "9990.00", heel(2.5), false, map[float64]int{41: 3, 42: 3, 43: 3}},
		{"Soft 7", "Ecco", "sneakers", catalog.GenderFemale, catalog.SeasonAllSeason, "Leather", "13990.00", nil, false, map[float64]int{36: 1, 37: 2, 38: 3, 39: 0}},
	}

	created := time.Now().Add(-time.Duration(len(shoes)) * time.Hour)
	for i, d := range shoes {
		shoe, err := m.AddShoe(catalog.Shoe{
			Name:           d.name,
			BrandID:        brands[d.brand].ID,
			CategoryID:     categories[d.category].ID,
			Gender:         d.gender,
			Season:         d.season,
			MaterialUpper:  d.upper,
			MaterialInsole: "Leather",
			MaterialSole:   "Rubber",
			HeelHeightCm:   d.heel,
			IsWaterproof:   d.wp,
			Price:          decimal.RequireFromString(d.price),
			CreatedAt:      created.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			return err
		}
		for size, stock := range d.sizes {
			if _, err := m.AddShoeSize(catalog.ShoeSize{ShoeID: shoe.ID, Size: size, Stock: stock}); err != nil {
				return err
			}
		}
	}
	return nil
}
