package catalog

import "strconv"

const (
	PageSize = 9

	HomeLatestLimit   = 6
	HomeSeasonalLimit = 4
)

// Page is one page of a shoe listing.
type Page struct {
	Number      int    `json:"number"`
	NumPages    int    `json:"num_pages"`
	Count       int    `json:"count"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
	Shoes       []Shoe `json:"shoes"`
}

// ParsePageNumber returns 1 for anything that is not an integer.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NumPages is the number of pages needed for count items; an empty
// listing still has one page.
func NumPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}

// ClampPage maps a requested page number onto an existing page. Numbers
// below 1 or past the end resolve to the last page.
func ClampPage(number, count int) int {
	last := NumPages(count)
	if number < 1 || number > last {
		return last
	}
	return number
}

// Offset is the index of the first item on the page.
func Offset(number int) int {
	return (number - 1) * PageSize
}

func NewPage(number, count int, shoes []Shoe) *Page {
	numPages := NumPages(count)
	if shoes == nil {
		shoes = []Shoe{}
	}
	return &Page{
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Shoes:       shoes,
	}
}

func (p *Page) NextPageNumber() int {
	return p.Number + 1
}

func (p *Page) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange lists every page number, for rendering pager links.
func (p *Page) PageRange() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
