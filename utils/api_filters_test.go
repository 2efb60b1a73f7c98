package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAPIFiltersSearch(t *testing.T) {
	params, _ := url.ParseQuery("keyword=chemise")
	query := NewAPIFilters(params).Search().Filter().Query()

	require.Contains(t, query, "name")
	assert.Equal(t, bson.M{"$regex": "chemise", "$options": "i"}, query["name"])
}

func TestAPIFiltersRangeOperators(t *testing.T) {
	params, _ := url.ParseQuery("price[gte]=100&price[lte]=500")
	query := NewAPIFilters(params).Search().Filter().Query()

	require.Contains(t, query, "price")
	price := query["price"].(bson.M)
	assert.Equal(t, 100.0, price["$gte"])
	assert.Equal(t, 500.0, price["$lte"])
}

func TestAPIFiltersEqualityAndCoercion(t *testing.T) {
	oid := primitive.NewObjectID()
	params, _ := url.ParseQuery("isActive=true&category=" + oid.Hex() + "&stock=3")
	query := NewAPIFilters(params).Filter().Query()

	assert.Equal(t, true, query["isActive"])
	assert.Equal(t, oid, query["category"])
	assert.Equal(t, 3.0, query["stock"])
}

func TestAPIFiltersIgnoresKeywordAndPage(t *testing.T) {
	params, _ := url.ParseQuery("keyword=robe&page=2")
	query := NewAPIFilters(params).Search().Filter().Query()

	assert.NotContains(t, query, "keyword")
	assert.NotContains(t, query, "page")
}

func TestAPIFiltersPage(t *testing.T) {
	params, _ := url.ParseQuery("page=3")
	assert.Equal(t, 3, NewAPIFilters(params).Page())

	params, _ = url.ParseQuery("")
	assert.Equal(t, 1, NewAPIFilters(params).Page())

	params, _ = url.ParseQuery("page=zero")
	assert.Equal(t, 1, NewAPIFilters(params).Page())
}

func TestAPIFiltersPagination(t *testing.T) {
	params, _ := url.ParseQuery("page=3")
	opts := NewAPIFilters(params).Pagination(2)

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(4), *opts.Skip)
	assert.Equal(t, int64(2), *opts.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(6, 2))
	assert.Equal(t, 4, TotalPages(7, 2))
	assert.Equal(t, 1, TotalPages(1, 2))
	assert.Equal(t, 0, TotalPages(0, 2))
}
