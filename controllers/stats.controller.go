package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"boutique-backend/pipelines"
)

// Trailing window of the trends report, in months.
const trendMonths = 6

// HealthCheck reports database connectivity.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := ctrl.DB.Client().Ping(ctx, nil)
	dbStatus := "connected"
	if err != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// GetStats reports catalog counts and total inventory value.
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products := ctrl.DB.Collection("products")

	totalProducts, _ := products.CountDocuments(ctx, bson.M{})
	totalTypes, _ := ctrl.DB.Collection("types").CountDocuments(ctx, bson.M{})
	totalCategories, _ := ctrl.DB.Collection("categories").CountDocuments(ctx, bson.M{})

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": []string{"$price", "$stock"}}},
		}},
	}
	cursor, err := products.Aggregate(ctx, pipeline)
	if err != nil {
		ctrl.Log.Errorw("failed to compute inventory value", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	defer cursor.Close(ctx)

	var totalValue float64
	var rows []bson.M
	if err := cursor.All(ctx, &rows); err == nil && len(rows) > 0 {
		if val, ok := rows[0]["total"].(float64); ok {
			totalValue = val
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": gin.H{
		"totalProducts":   totalProducts,
		"totalTypes":      totalTypes,
		"totalCategories": totalCategories,
		"inventoryValue":  totalValue,
	}})
}

// GetTypeStats runs the three dashboard aggregations over paid orders.
// Any database error yields success:false with empty sub-reports, never a
// partial payload.
func (ctrl *Controller) GetTypeStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders := ctrl.DB.Collection("orders")

	analytics := []pipelines.TypeAnalyticsRow{}
	trends := []pipelines.TypeTrendRow{}
	conversion := []pipelines.ConversionRow{}

	fail := func(stage string, err error) {
		ctrl.Log.Errorw("type stats aggregation failed", "stage", stage, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    "Failed to compute type statistics",
			"analytics":  []pipelines.TypeAnalyticsRow{},
			"trends":     []pipelines.TypeTrendRow{},
			"conversion": []pipelines.ConversionRow{},
		})
	}

	analyticsPipeline, err := pipelines.TypeAnalytics(0, 0)
	if err != nil {
		fail("analytics", err)
		return
	}
	cursor, err := orders.Aggregate(ctx, analyticsPipeline)
	if err != nil {
		fail("analytics", err)
		return
	}
	if err = cursor.All(ctx, &analytics); err != nil {
		fail("analytics", err)
		return
	}

	since := time.Now().AddDate(0, -trendMonths, 0)
	cursor, err = orders.Aggregate(ctx, pipelines.TypeTrends(since))
	if err != nil {
		fail("trends", err)
		return
	}
	if err = cursor.All(ctx, &trends); err != nil {
		fail("trends", err)
		return
	}

	cursor, err = orders.Aggregate(ctx, pipelines.TypeConversionRates())
	if err != nil {
		fail("conversion", err)
		return
	}
	if err = cursor.All(ctx, &conversion); err != nil {
		fail("conversion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"analytics":  analytics,
		"trends":     trends,
		"conversion": conversion,
		"timestamp":  time.Now(),
	})
}

// GetMonthlyComparison compares this calendar month against the previous
// one, per type.
func (ctrl *Controller) GetMonthlyComparison(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders := ctrl.DB.Collection("orders")

	thisMonthStart := pipelines.CurrentMonthStart(time.Now())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	fail := func(stage string, err error) {
		ctrl.Log.Errorw("monthly comparison aggregation failed", "stage", stage, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    "Failed to compute monthly comparison",
			"comparison": []pipelines.TypeComparison{},
		})
	}

	thisMonth := []pipelines.MonthlyTypeRevenue{}
	cursor, err := orders.Aggregate(ctx, pipelines.MonthlyRevenue(thisMonthStart, time.Time{}))
	if err != nil {
		fail("this-month", err)
		return
	}
	if err = cursor.All(ctx, &thisMonth); err != nil {
		fail("this-month", err)
		return
	}

	lastMonth := []pipelines.MonthlyTypeRevenue{}
	cursor, err = orders.Aggregate(ctx, pipelines.MonthlyRevenue(lastMonthStart, thisMonthStart))
	if err != nil {
		fail("last-month", err)
		return
	}
	if err = cursor.All(ctx, &lastMonth); err != nil {
		fail("last-month", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"comparison": pipelines.MergeMonthlyComparison(thisMonth, lastMonth),
	})
}
