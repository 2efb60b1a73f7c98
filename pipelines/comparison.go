package pipelines

import (
	"math"
	"sort"
)

// TypeComparison is one row of the this-month vs last-month report.
type TypeComparison struct {
	Name             string  `json:"name"`
	ThisMonth        int     `json:"thisMonth"`
	LastMonth        int     `json:"lastMonth"`
	Variation        int     `json:"variation"`
	PercentVariation float64 `json:"percentVariation"`
	ThisMonthOrders  int     `json:"thisMonthOrders"`
	LastMonthOrders  int     `json:"lastMonthOrders"`
}

// MergeMonthlyComparison joins two single-month aggregations over the union
// of their types. A type absent from last month gets percentVariation 0
// rather than a division by zero. Rows are sorted by current-month revenue,
// descending.
func MergeMonthlyComparison(thisMonth, lastMonth []MonthlyTypeRevenue) []TypeComparison {
	current := make(map[string]MonthlyTypeRevenue, len(thisMonth))
	previous := make(map[string]MonthlyTypeRevenue, len(lastMonth))

	var names []string
	seen := make(map[string]bool)
	for _, row := range thisMonth {
		current[row.Type] = row
		if !seen[row.Type] {
			seen[row.Type] = true
			names = append(names, row.Type)
		}
	}
	for _, row := range lastMonth {
		previous[row.Type] = row
		if !seen[row.Type] {
			seen[row.Type] = true
			names = append(names, row.Type)
		}
	}

	comparison := make([]TypeComparison, 0, len(names))
	for _, name := range names {
		thisRevenue := current[name].Revenue
		lastRevenue := previous[name].Revenue
		variation := thisRevenue - lastRevenue

		percent := 0.0
		if lastRevenue > 0 {
			percent = math.Round(variation/lastRevenue*1000) / 10
		}

		label := name
		if label == "" {
			label = "Unspecified"
		}

		comparison = append(comparison, TypeComparison{
			Name:             label,
			ThisMonth:        int(math.Round(thisRevenue)),
			LastMonth:        int(math.Round(lastRevenue)),
			Variation:        int(math.Round(variation)),
			PercentVariation: percent,
			ThisMonthOrders:  current[name].Orders,
			LastMonthOrders:  previous[name].Orders,
		})
	}

	sort.SliceStable(comparison, func(i, j int) bool {
		return comparison[i].ThisMonth > comparison[j].ThisMonth
	})
	return comparison
}
