package features

import (
	"math"
	"testing"

	"menurank/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_BuildFrame(t *testing.T) {
	t.Run("derives enrichment features", func(t *testing.T) {
		products := []domain.Product{
			{ID: 1, Name: "Grilled Sea Bass Sandwich", Price: 200, Margin: 0.3},
		}
		stats := []domain.DailyStat{
			{ProductID: 1, Date: "2025-09-01", SalesCount: 10, ConversionRate: 0.1},
		}

		frame := BuildFrame(products, stats)

		require.Equal(t, []string{
			"price", "margin", "sales_count", "cr",
			"unit_profit", "aov", "ppc", "is_signature",
		}, frame.Columns)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[][]float64{{200, 0.3, 10, 0.1, 60, 200, 0.5, 0}},
				frame.Values,
			),
		)
		require.Equal(t, []int64{1}, frame.ProductIDs)
		require.Equal(t, []string{"2025-09-01"}, frame.Dates)
		require.Equal(t, []string{"Roll"}, frame.Categories)
	})

	t.Run("signature flag for every third id", func(t *testing.T) {
		products := []domain.Product{
			{ID: 3, Price: 100, Margin: 0.5},
		}
		stats := []domain.DailyStat{
			{ProductID: 3, Date: "2025-09-01", SalesCount: 1, ConversionRate: 0.2},
		}

		frame := BuildFrame(products, stats)

		isSignature, ok := frame.ColumnIndex("is_signature")
		require.True(t, ok)
		require.Equal(t, 1.0, frame.Values[0][isSignature])
		require.Equal(t, []string{"Salad"}, frame.Categories)
	})

	t.Run("unknown product ids zero-fill catalog features", func(t *testing.T) {
		stats := []domain.DailyStat{
			{ProductID: 99, Date: "2025-09-01", SalesCount: 5, ConversionRate: 0.2},
		}

		frame := BuildFrame(nil, stats)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[][]float64{{0, 0, 5, 0.2, 0, 0, 0, 0}},
				frame.Values,
			),
		)
		require.Equal(t, []string{"Other"}, frame.Categories)
	})

	t.Run("products with no statistics are absent", func(t *testing.T) {
		products := []domain.Product{
			{ID: 1, Price: 10, Margin: 0.2},
			{ID: 2, Price: 20, Margin: 0.4},
		}
		stats := []domain.DailyStat{
			{ProductID: 2, Date: "2025-09-01", SalesCount: 3, ConversionRate: 0.1},
		}

		frame := BuildFrame(products, stats)

		require.Equal(t, []int64{2}, frame.ProductIDs)
	})

	t.Run("date column dropped when statistics carry no dates", func(t *testing.T) {
		products := []domain.Product{{ID: 1, Price: 10, Margin: 0.2}}
		stats := []domain.DailyStat{{ProductID: 1, SalesCount: 3}}

		frame := BuildFrame(products, stats)

		require.False(t, frame.HasDates())
	})

	t.Run("non-finite inputs become zero", func(t *testing.T) {
		products := []domain.Product{{ID: 1, Price: math.Inf(1), Margin: 0.5}}
		stats := []domain.DailyStat{
			{ProductID: 1, Date: "2025-09-01", SalesCount: math.NaN(), ConversionRate: 0.1},
		}

		frame := BuildFrame(products, stats)

		for _, v := range frame.Values[0] {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
		price, _ := frame.ColumnIndex("price")
		sales, _ := frame.ColumnIndex("sales_count")
		require.Equal(t, 0.0, frame.Values[0][price])
		require.Equal(t, 0.0, frame.Values[0][sales])
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		products := []domain.Product{
			{ID: 1, Price: 120, Margin: 0.25},
			{ID: 2, Price: 180, Margin: 0.4},
		}
		stats := []domain.DailyStat{
			{ProductID: 1, Date: "2025-09-01", SalesCount: 4, ConversionRate: 0.15},
			{ProductID: 2, Date: "2025-09-01", SalesCount: 9, ConversionRate: 0.2},
			{ProductID: 1, Date: "2025-09-02", SalesCount: 7, ConversionRate: 0.1},
		}

		a := BuildFrame(products, stats)
		b := BuildFrame(products, stats)
		require.Equal(t, "", cmp.Diff(a, b))
	})
}
