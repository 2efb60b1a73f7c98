package utils

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var operatorKey = regexp.MustCompile(`^(\w+)\[(gte|gt|lte|lt)\]$`)

// APIFilters turns admin-UI query parameters into a Mongo filter plus
// pagination options: ?keyword= searches the name field, ?price[gte]=...
// style params become range operators, everything else is an equality match.
type APIFilters struct {
	params url.Values
	query  bson.M
}

// NewAPIFilters wraps the request's query parameters.
func NewAPIFilters(params url.Values) *APIFilters {
	return &APIFilters{params: params, query: bson.M{}}
}

// Search adds a case-insensitive name match for the keyword parameter.
func (f *APIFilters) Search() *APIFilters {
	if keyword := f.params.Get("keyword"); keyword != "" {
		f.query["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}
	return f
}

// Filter maps the remaining parameters onto the query, translating
// field[op] keys into their $-prefixed Mongo operators.
func (f *APIFilters) Filter() *APIFilters {
	for key, values := range f.params {
		if key == "keyword" || key == "page" || len(values) == 0 {
			continue
		}
		value := values[0]

		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			existing, ok := f.query[field].(bson.M)
			if !ok {
				existing = bson.M{}
			}
			existing[op] = coerceValue(value)
			f.query[field] = existing
			continue
		}

		f.query[key] = coerceValue(value)
	}
	return f
}

// Query returns the accumulated Mongo filter.
func (f *APIFilters) Query() bson.M {
	return f.query
}

// Page returns the requested page number, defaulting to 1.
func (f *APIFilters) Page() int {
	page, err := strconv.Atoi(f.params.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Pagination builds the skip/limit options for the requested page.
func (f *APIFilters) Pagination(resPerPage int) *options.FindOptions {
	skip := int64(resPerPage * (f.Page() - 1))
	return options.Find().SetSkip(skip).SetLimit(int64(resPerPage))
}

// TotalPages reports how many pages the filtered result set spans.
func TotalPages(filteredCount, resPerPage int) int {
	if resPerPage <= 0 || filteredCount <= 0 {
		return 0
	}
	if filteredCount%resPerPage == 0 {
		return filteredCount / resPerPage
	}
	return filteredCount/resPerPage + 1
}

// coerceValue maps a raw query string onto the bson type it should match:
// object ids, booleans and numbers before falling back to a plain string.
func coerceValue(raw string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		return oid
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
