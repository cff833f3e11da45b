// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the client sends none.
const DefaultLimit = 12

// MaxLimit caps client-requested page sizes.
const MaxLimit = 100

// MaxNumber caps the page number so Skip stays positive for any limit,
// including on 32-bit platforms.
const MaxNumber = math.MaxInt32 / MaxLimit

// Page is a 1-based offset page.
type Page struct {
	Number int
	Limit  int
}

// New clamps number and limit into a usable page. A number below 1 becomes
// 1 and one above MaxNumber becomes MaxNumber. A non-positive limit becomes
// DefaultLimit, and limits above MaxLimit are capped.
func New(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxNumber {
		number = MaxNumber
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Parse reads the "page" and "limit" query parameters. Missing or
// non-numeric values fall back to the defaults.
func Parse(r *http.Request) Page {
	return New(atoi(query.Get(r, "page")), atoi(query.Get(r, "limit")))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Skip is the number of documents before this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// Pages is ceil(total/limit).
func (p Page) Pages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	l := int64(p.Limit)
	return (total + l - 1) / l
}

// Apply sets skip and limit on a Find.
func (p Page) Apply(opts *options.FindOptions) *options.FindOptions {
	return opts.SetSkip(p.Skip()).SetLimit(int64(p.Limit))
}
