package propertystore

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort keys accepted by the search endpoint.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// SearchParams is a parsed public search query. Zero values mean "no
// constraint".
type SearchParams struct {
	Type      models.PropertyType
	Status    models.ListingStatus
	City      string
	Area      string
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Bathrooms *int
	Search    string
	Sort      string
	Page      paging.Page
}

// ParseSearch reads search parameters from a query string. Unknown enum
// values, malformed numbers and text that is not valid UTF-8 are ignored
// rather than rejected.
func ParseSearch(q url.Values) SearchParams {
	get := func(k string) string {
		v := normalize.QueryParam(q.Get(k))
		if !utf8.ValidString(v) {
			return ""
		}
		return v
	}

	p := SearchParams{
		City:   get("city"),
		Area:   get("area"),
		Search: get("search"),
		Sort:   get("sort"),
		Page:   paging.New(atoi(get("page")), atoi(get("limit"))),
	}
	if t := models.PropertyType(get("type")); t.Valid() {
		p.Type = t
	}
	if s := models.ListingStatus(get("status")); s.Valid() {
		p.Status = s
	}
	p.MinPrice = parseFloat(get("minPrice"))
	p.MaxPrice = parseFloat(get("maxPrice"))
	p.Bedrooms = parseInt(get("bedrooms"))
	p.Bathrooms = parseInt(get("bathrooms"))
	return p
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// Filter builds the Mongo filter. Only active listings are ever matched.
// City and area compare case-insensitively through their folded copies; the
// free-text search is a literal, case-insensitive substring match on title
// or description.
func (p SearchParams) Filter() bson.M {
	f := bson.M{"is_active": true}

	if p.Type != "" {
		f["type"] = p.Type
	}
	if p.Status != "" {
		f["status"] = p.Status
	}
	if p.City != "" {
		f["location.city_ci"] = text.Fold(p.City)
	}
	if p.Area != "" {
		f["location.area_ci"] = text.Fold(p.Area)
	}

	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		f["price"] = price
	}
	if p.Bedrooms != nil {
		f["details.bedrooms"] = bson.M{"$gte": *p.Bedrooms}
	}
	if p.Bathrooms != nil {
		f["details.bathrooms"] = bson.M{"$gte": *p.Bathrooms}
	}

	if p.Search != "" && utf8.ValidString(p.Search) {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Search), Options: "i"}
		f["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	return f
}

// SortFor maps a sort key to a Mongo sort. Unknown keys sort newest first.
// _id breaks ties so pages never overlap.
func SortFor(key string) bson.D {
	switch key {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}}
	case SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// CacheKey returns the parameters that identify this query's results.
func (p SearchParams) CacheKey() map[string]string {
	m := map[string]string{
		"type":   string(p.Type),
		"status": string(p.Status),
		"city":   text.Fold(p.City),
		"area":   text.Fold(p.Area),
		"search": p.Search,
		"sort":   p.Sort,
		"page":   strconv.Itoa(p.Page.Number),
		"limit":  strconv.Itoa(p.Page.Limit),
	}
	if p.MinPrice != nil {
		m["minPrice"] = strconv.FormatFloat(*p.MinPrice, 'f', -1, 64)
	}
	if p.MaxPrice != nil {
		m["maxPrice"] = strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64)
	}
	if p.Bedrooms != nil {
		m["bedrooms"] = strconv.Itoa(*p.Bedrooms)
	}
	if p.Bathrooms != nil {
		m["bathrooms"] = strconv.Itoa(*p.Bathrooms)
	}
	return m
}
