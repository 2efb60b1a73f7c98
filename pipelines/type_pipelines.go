// Package pipelines builds the MongoDB aggregation pipelines behind the
// type analytics dashboards, plus the pure post-processing they need.
package pipelines

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"boutique-backend/models"
)

// TypeAnalyticsRow is one group of the type analytics pipeline.
type TypeAnalyticsRow struct {
	Type          string   `bson:"_id" json:"_id"`
	TotalRevenue  float64  `bson:"totalRevenue" json:"totalRevenue"`
	TotalOrders   int      `bson:"totalOrders" json:"totalOrders"`
	TotalQuantity int      `bson:"totalQuantity" json:"totalQuantity"`
	AvgOrderValue float64  `bson:"avgOrderValue" json:"avgOrderValue"`
	Categories    []string `bson:"categories" json:"categories"`
}

// TrendKey buckets a trend row by type and calendar month.
type TrendKey struct {
	Type  string `bson:"type" json:"type"`
	Month int    `bson:"month" json:"month"`
	Year  int    `bson:"year" json:"year"`
}

// TypeTrendRow is one (type, month) bucket of the trends pipeline.
type TypeTrendRow struct {
	Key     TrendKey `bson:"_id" json:"_id"`
	Revenue float64  `bson:"revenue" json:"revenue"`
	Orders  int      `bson:"orders" json:"orders"`
}

// ConversionRow is the paid/total ratio for one type, as a percentage.
type ConversionRow struct {
	Type           string  `bson:"type" json:"type"`
	ConversionRate float64 `bson:"conversionRate" json:"conversionRate"`
}

// MonthlyTypeRevenue is one group of a single-month revenue pipeline,
// consumed by the monthly comparison merge.
type MonthlyTypeRevenue struct {
	Type    string  `bson:"_id" json:"_id"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int     `bson:"orders" json:"orders"`
}

// MonthDateRange returns the [start, end) bounds of a calendar month.
func MonthDateRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0), nil
}

// CurrentMonthStart returns midnight on the first day of now's month.
func CurrentMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// TypeAnalytics groups paid order lines by type, summing revenue and
// quantities. A zero month means no time window.
func TypeAnalytics(month, year int) ([]bson.M, error) {
	match := bson.M{"paymentStatus": models.PaymentStatusPaid}
	if month != 0 && year != 0 {
		start, end, err := MonthDateRange(month, year)
		if err != nil {
			return nil, err
		}
		match["createdAt"] = bson.M{"$gte": start, "$lt": end}
	}

	return []bson.M{
		{"$match": match},
		{"$unwind": "$orderItems"},
		{"$group": bson.M{
			"_id": "$orderItems.type",
			"totalRevenue": bson.M{
				"$sum": bson.M{"$multiply": []string{"$orderItems.price", "$orderItems.quantity"}},
			},
			"totalOrders":   bson.M{"$sum": 1},
			"totalQuantity": bson.M{"$sum": "$orderItems.quantity"},
			"avgOrderValue": bson.M{
				"$avg": bson.M{"$multiply": []string{"$orderItems.price", "$orderItems.quantity"}},
			},
			"categories": bson.M{"$addToSet": "$orderItems.category"},
		}},
		{"$sort": bson.M{"totalRevenue": -1}},
	}, nil
}

// TypeTrends buckets paid order lines by (type, month, year) since the given
// date, sorted chronologically.
func TypeTrends(since time.Time) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"createdAt":     bson.M{"$gte": since},
			"paymentStatus": models.PaymentStatusPaid,
		}},
		{"$unwind": "$orderItems"},
		{"$group": bson.M{
			"_id": bson.M{
				"type":  "$orderItems.type",
				"month": bson.M{"$month": "$createdAt"},
				"year":  bson.M{"$year": "$createdAt"},
			},
			"revenue": bson.M{
				"$sum": bson.M{"$multiply": []string{"$orderItems.price", "$orderItems.quantity"}},
			},
			"orders": bson.M{"$sum": 1},
		}},
		{"$sort": bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}},
	}
}

// TypeConversionRates computes, per type, the share of order lines whose
// order was paid, over all orders regardless of age.
func TypeConversionRates() []bson.M {
	return []bson.M{
		{"$unwind": "$orderItems"},
		{"$group": bson.M{
			"_id":         "$orderItems.type",
			"totalOrders": bson.M{"$sum": 1},
			"paidOrders": bson.M{
				"$sum": bson.M{"$cond": []interface{}{
					bson.M{"$eq": []string{"$paymentStatus", models.PaymentStatusPaid}},
					1,
					0,
				}},
			},
		}},
		{"$project": bson.M{
			"type": "$_id",
			"conversionRate": bson.M{
				"$multiply": []interface{}{
					bson.M{"$divide": []string{"$paidOrders", "$totalOrders"}},
					100,
				},
			},
		}},
	}
}

// MonthlyRevenue sums paid order line revenue per type within [start, end).
// A zero end leaves the window open-ended. Sorting is left to the caller's
// merge step.
func MonthlyRevenue(start, end time.Time) []bson.M {
	window := bson.M{"$gte": start}
	if !end.IsZero() {
		window["$lt"] = end
	}
	return []bson.M{
		{"$match": bson.M{
			"createdAt":     window,
			"paymentStatus": models.PaymentStatusPaid,
		}},
		{"$unwind": "$orderItems"},
		{"$group": bson.M{
			"_id": "$orderItems.type",
			"revenue": bson.M{
				"$sum": bson.M{"$multiply": []string{"$orderItems.price", "$orderItems.quantity"}},
			},
			"orders": bson.M{"$sum": 1},
		}},
	}
}
