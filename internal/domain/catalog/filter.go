package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Filter selects shoes from the catalog. Every field is optional and
// present fields are combined with AND, evaluated in the order they are
// declared here.
type Filter struct {
	Query      string
	Gender     Gender
	Season     Season
	Size       *float64
	CategoryID *int64
	BrandID    *int64
}

func (f Filter) IsZero() bool {
	return f.Query == "" && f.Gender == "" && f.Season == "" &&
		f.Size == nil && f.CategoryID == nil && f.BrandID == nil
}

func MenShoes() Filter {
	return Filter{Gender: GenderMale}
}

func WomenShoes() Filter {
	return Filter{Gender: GenderFemale}
}

func SummerShoes() Filter {
	return Filter{Season: SeasonSummer}
}

func WinterShoes() Filter {
	return Filter{Season: SeasonWinter}
}

// AvailableInSize matches shoes with a size row of the given size that has stock.
func AvailableInSize(size float64) Filter {
	return Filter{Size: &size}
}

// ParseFilter reads the catalog query parameters q, gender, season, size,
// category and brand. Values that do not parse as numbers are dropped.
// The search text is used as given, surrounding whitespace included.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Query:  q.Get("q"),
		Gender: Gender(q.Get("gender")),
		Season: Season(q.Get("season")),
	}

	if raw := q.Get("size"); raw != "" {
		if size, err := ParseSize(raw); err == nil {
			f.Size = &size
		}
	}
	if raw := q.Get("category"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	if raw := q.Get("brand"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.BrandID = &id
		}
	}

	return f
}

// ParseSize parses a shoe size such as "42" or "38.5".
func ParseSize(raw string) (float64, error) {
	size, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 {
		return 0, strconv.ErrRange
	}
	return size, nil
}

// FormatSize renders a size the way it appears in cart keys: 42 -> "42.0".
func FormatSize(size float64) string {
	s := strconv.FormatFloat(size, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
