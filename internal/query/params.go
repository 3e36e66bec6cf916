package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"numlist/internal/model"
)

// maxPage bounds page numbers so offsets cannot overflow; any page this large is
// past the end of every supported dataset.
const maxPage = math.MaxInt32/model.PageSize + 1

type Params struct {
	Page   int
	Search string
}

// ParseParams reads page and search from a query string. Malformed values are
// coerced to defaults rather than rejected.
func ParseParams(v url.Values) Params {
	return Params{
		Page:   parsePage(v.Get("page")),
		Search: v.Get("search"),
	}
}

// parsePage accepts a leading integer ("3", " 3", "3abc") and maps everything
// else, including zero and negatives, to page 1.
func parsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	start := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == start {
		return 1
	}
	n, err := strconv.ParseInt(raw[:end], 10, 64)
	if err != nil {
		if raw[0] == '-' {
			return 1
		}
		return maxPage
	}
	if n < 1 {
		return 1
	}
	if n > maxPage {
		return maxPage
	}
	return int(n)
}

func (p Params) normalized() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (p Params) offset() int {
	return (p.Page - 1) * model.PageSize
}
