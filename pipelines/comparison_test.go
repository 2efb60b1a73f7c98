package pipelines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMonthlyComparison(t *testing.T) {
	thisMonth := []MonthlyTypeRevenue{
		{Type: "Homme", Revenue: 1500, Orders: 2},
		{Type: "Femme", Revenue: 3000, Orders: 5},
	}
	lastMonth := []MonthlyTypeRevenue{
		{Type: "Homme", Revenue: 1000, Orders: 1},
		{Type: "Femme", Revenue: 2000, Orders: 4},
	}

	comparison := MergeMonthlyComparison(thisMonth, lastMonth)
	require.Len(t, comparison, 2)

	// Sorted by current-month revenue, descending.
	assert.Equal(t, "Femme", comparison[0].Name)
	assert.Equal(t, 3000, comparison[0].ThisMonth)
	assert.Equal(t, 2000, comparison[0].LastMonth)
	assert.Equal(t, 1000, comparison[0].Variation)
	assert.InDelta(t, 50.0, comparison[0].PercentVariation, 0.001)
	assert.Equal(t, 5, comparison[0].ThisMonthOrders)
	assert.Equal(t, 4, comparison[0].LastMonthOrders)

	assert.Equal(t, "Homme", comparison[1].Name)
	assert.InDelta(t, 50.0, comparison[1].PercentVariation, 0.001)
}

func TestMergeMonthlyComparisonZeroPriorRevenue(t *testing.T) {
	thisMonth := []MonthlyTypeRevenue{{Type: "Enfant", Revenue: 800, Orders: 3}}

	comparison := MergeMonthlyComparison(thisMonth, nil)
	require.Len(t, comparison, 1)

	// No prior revenue must yield 0%, not Inf or NaN.
	assert.Equal(t, 800, comparison[0].ThisMonth)
	assert.Equal(t, 0, comparison[0].LastMonth)
	assert.Equal(t, 800, comparison[0].Variation)
	assert.Equal(t, 0.0, comparison[0].PercentVariation)
}

func TestMergeMonthlyComparisonUnionOfTypes(t *testing.T) {
	thisMonth := []MonthlyTypeRevenue{{Type: "Homme", Revenue: 500, Orders: 1}}
	lastMonth := []MonthlyTypeRevenue{{Type: "Femme", Revenue: 900, Orders: 2}}

	comparison := MergeMonthlyComparison(thisMonth, lastMonth)
	require.Len(t, comparison, 2)

	assert.Equal(t, "Homme", comparison[0].Name)
	assert.Equal(t, "Femme", comparison[1].Name)
	assert.Equal(t, 0, comparison[1].ThisMonth)
	assert.Equal(t, 900, comparison[1].LastMonth)
	assert.Equal(t, -900, comparison[1].Variation)
	assert.InDelta(t, -100.0, comparison[1].PercentVariation, 0.001)
}

func TestMergeMonthlyComparisonRoundsPercentToOneDecimal(t *testing.T) {
	thisMonth := []MonthlyTypeRevenue{{Type: "Homme", Revenue: 400, Orders: 1}}
	lastMonth := []MonthlyTypeRevenue{{Type: "Homme", Revenue: 300, Orders: 1}}

	comparison := MergeMonthlyComparison(thisMonth, lastMonth)
	require.Len(t, comparison, 1)
	assert.InDelta(t, 33.3, comparison[0].PercentVariation, 0.001)
}

func TestMergeMonthlyComparisonUnnamedType(t *testing.T) {
	comparison := MergeMonthlyComparison([]MonthlyTypeRevenue{{Type: "", Revenue: 100}}, nil)
	require.Len(t, comparison, 1)
	assert.Equal(t, "Unspecified", comparison[0].Name)
}

func TestMergeMonthlyComparisonEmpty(t *testing.T) {
	assert.Empty(t, MergeMonthlyComparison(nil, nil))
}
