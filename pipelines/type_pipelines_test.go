package pipelines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMonthDateRange(t *testing.T) {
	start, end, err := MonthDateRange(2, 2026)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), end)

	// December rolls over into the next year.
	start, end, err = MonthDateRange(12, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), end)

	_, _, err = MonthDateRange(0, 2026)
	assert.Error(t, err)
	_, _, err = MonthDateRange(13, 2026)
	assert.Error(t, err)
}

func TestCurrentMonthStart(t *testing.T) {
	now := time.Date(2026, time.August, 30, 15, 42, 7, 0, time.UTC)
	start := CurrentMonthStart(now)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestTypeAnalyticsPipelineShape(t *testing.T) {
	pipeline, err := TypeAnalytics(0, 0)
	require.NoError(t, err)
	require.Len(t, pipeline, 4)

	match := pipeline[0]["$match"].(bson.M)
	assert.Equal(t, "paid", match["paymentStatus"])
	assert.NotContains(t, match, "createdAt")

	group := pipeline[2]["$group"].(bson.M)
	assert.Equal(t, "$orderItems.type", group["_id"])
	assert.Contains(t, group, "totalRevenue")
	assert.Contains(t, group, "avgOrderValue")
	assert.Contains(t, group, "categories")

	sort := pipeline[3]["$sort"].(bson.M)
	assert.Equal(t, -1, sort["totalRevenue"])
}

func TestTypeAnalyticsPipelineWithWindow(t *testing.T) {
	pipeline, err := TypeAnalytics(3, 2026)
	require.NoError(t, err)

	match := pipeline[0]["$match"].(bson.M)
	window := match["createdAt"].(bson.M)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), window["$gte"])
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.Local), window["$lt"])
}

func TestTypeAnalyticsPipelineInvalidMonth(t *testing.T) {
	_, err := TypeAnalytics(14, 2026)
	assert.Error(t, err)
}

func TestTypeTrendsPipelineShape(t *testing.T) {
	since := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	pipeline := TypeTrends(since)
	require.Len(t, pipeline, 4)

	match := pipeline[0]["$match"].(bson.M)
	assert.Equal(t, "paid", match["paymentStatus"])
	assert.Equal(t, bson.M{"$gte": since}, match["createdAt"])

	group := pipeline[2]["$group"].(bson.M)
	key := group["_id"].(bson.M)
	assert.Equal(t, "$orderItems.type", key["type"])

	sort := pipeline[3]["$sort"].(bson.D)
	assert.Equal(t, "_id.year", sort[0].Key)
	assert.Equal(t, 1, sort[0].Value)
	assert.Equal(t, "_id.month", sort[1].Key)
}

func TestTypeConversionRatesPipelineShape(t *testing.T) {
	pipeline := TypeConversionRates()
	require.Len(t, pipeline, 3)

	project := pipeline[2]["$project"].(bson.M)
	assert.Equal(t, "$_id", project["type"])
	assert.Contains(t, project, "conversionRate")
}

func TestMonthlyRevenuePipelineWindow(t *testing.T) {
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	pipeline := MonthlyRevenue(start, end)
	match := pipeline[0]["$match"].(bson.M)
	window := match["createdAt"].(bson.M)
	assert.Equal(t, start, window["$gte"])
	assert.Equal(t, end, window["$lt"])

	// Open-ended when end is zero.
	pipeline = MonthlyRevenue(start, time.Time{})
	window = pipeline[0]["$match"].(bson.M)["createdAt"].(bson.M)
	assert.NotContains(t, window, "$lt")
}
