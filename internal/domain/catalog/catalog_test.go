package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Codes
// ============================================

func TestGender_Label(t *testing.T) {
	assert.Equal(t, "Men's", GenderMale.Label())
	assert.Equal(t, "Women's", GenderFemale.Label())
	assert.Equal(t, "Unisex", GenderUnisex.Label())
	assert.False(t, Gender("X").Valid())
}

func TestSeason_Label(t *testing.T) {
	assert.Equal(t, "Winter", SeasonWinter.Label())
	assert.Equal(t, "Summer", SeasonSummer.Label())
	assert.Equal(t, "Demi-season", SeasonDemi.Label())
	assert.Equal(t, "All-season", SeasonAllSeason.Label())
	assert.True(t, SeasonDemi.Valid())
	assert.False(t, Season("Q").Valid())
}

func TestShoe_String(t *testing.T) {
	s := Shoe{Name: "Air Max", Brand: Brand{Name: "Nike"}}
	assert.Equal(t, "Nike Air Max", s.String())
}

func TestShoe_AvailableSizes(t *testing.T) {
	s := Shoe{Sizes: []ShoeSize{{Size: 40, Stock: 0}, {Size: 41, Stock: 2}, {Size: 42, Stock: 1}}}

	sizes := s.AvailableSizes()

	require.Len(t, sizes, 2)
	assert.Equal(t, 41.0, sizes[0].Size)
	assert.Equal(t, 42.0, sizes[1].Size)
}

// ============================================
// Filter parsing
// ============================================

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, f Filter)
	}{
		{
			name:  "empty",
			query: "",
			check: func(t *testing.T, f Filter) { assert.True(t, f.IsZero()) },
		},
		{
			name:  "all fields",
			query: "q=air&gender=M&season=W&size=42.5&category=3&brand=7",
			check: func(t *testing.T, f Filter) {
				assert.Equal(t, "air", f.Query)
				assert.Equal(t, GenderMale, f.Gender)
				assert.Equal(t, SeasonWinter, f.Season)
				require.NotNil(t, f.Size)
				assert.Equal(t, 42.5, *f.Size)
				require.NotNil(t, f.CategoryID)
				assert.Equal(t, int64(3), *f.CategoryID)
				require.NotNil(t, f.BrandID)
				assert.Equal(t, int64(7), *f.BrandID)
			},
		},
		{
			name:  "whitespace-only search is kept",
			query: "q=%20%20",
			check: func(t *testing.T, f Filter) {
				assert.Equal(t, "  ", f.Query)
				assert.False(t, f.IsZero())
			},
		},
		{
			name:  "non-numeric size is ignored, other filters kept",
			query: "size=abc&gender=F",
			check: func(t *testing.T, f Filter) {
				assert.Nil(t, f.Size)
				assert.Equal(t, GenderFemale, f.Gender)
			},
		},
		{
			name:  "non-numeric ids are ignored",
			query: "category=shoes&brand=1.5",
			check: func(t *testing.T, f Filter) {
				assert.Nil(t, f.CategoryID)
				assert.Nil(t, f.BrandID)
			},
		},
		{
			name:  "unknown gender code is kept verbatim",
			query: "gender=X",
			check: func(t *testing.T, f Filter) { assert.Equal(t, Gender("X"), f.Gender) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			tt.check(t, ParseFilter(q))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"42", 42, false},
		{"38.5", 38.5, false},
		{" 40 ", 40, false},
		{"abc", 0, true},
		{"", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSize(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "42.0", FormatSize(42))
	assert.Equal(t, "38.5", FormatSize(38.5))
	assert.Equal(t, "0.0", FormatSize(0))
}

func TestFilterShortcuts(t *testing.T) {
	assert.Equal(t, GenderMale, MenShoes().Gender)
	assert.Equal(t, GenderFemale, WomenShoes().Gender)
	assert.Equal(t, SeasonSummer, SummerShoes().Season)
	assert.Equal(t, SeasonWinter, WinterShoes().Season)

	f := AvailableInSize(44)
	require.NotNil(t, f.Size)
	assert.Equal(t, 44.0, *f.Size)
}

// ============================================
// Pagination
// ============================================

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("first"))
	assert.Equal(t, 3, ParsePageNumber("3"))
	assert.Equal(t, -2, ParsePageNumber("-2"))
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name   string
		number int
		count  int
		want   int
	}{
		{"first page", 1, 20, 1},
		{"last page", 3, 20, 3},
		{"past the end", 9, 20, 3},
		{"zero", 0, 20, 3},
		{"negative", -1, 20, 3},
		{"empty listing", 5, 0, 1},
		{"exact multiple", 2, 18, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.number, tt.count))
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage(2, 20, []Shoe{{ID: 10}})

	assert.Equal(t, 3, p.NumPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrevious)
	assert.Equal(t, 3, p.NextPageNumber())
	assert.Equal(t, 1, p.PreviousPageNumber())
	assert.Equal(t, []int{1, 2, 3}, p.PageRange())

	empty := NewPage(1, 0, nil)
	assert.Equal(t, 1, empty.NumPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
	assert.NotNil(t, empty.Shoes)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, 18, Offset(3))
}
