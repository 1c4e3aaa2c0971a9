package service

import (
	"testing"

	"menurank/internal/domain"
	"menurank/internal/gbrt"
	"menurank/internal/ranking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProductRepository struct {
	products []domain.Product
}

func (s stubProductRepository) List() ([]domain.Product, error) {
	return s.products, nil
}

type stubDailyStatRepository struct {
	stats []domain.DailyStat
}

func (s stubDailyStatRepository) List(span domain.Span) ([]domain.DailyStat, error) {
	out := []domain.DailyStat{}
	for _, st := range s.stats {
		if span.Contains(st.Date) {
			out = append(out, st)
		}
	}
	return out, nil
}

// salesStumpService scores purely on sales_count: <= 5 scores 0.1,
// above scores 0.9. Enough to make rankings deterministic.
func salesStumpService(products []domain.Product, stats []domain.DailyStat) *RankingService {
	artifact := &gbrt.Artifact{
		Ensemble: &gbrt.Ensemble{
			LearningRate: 1,
			Trees: []gbrt.Tree{{
				Nodes: []gbrt.Node{
					{Feature: 0, Threshold: 5, Left: 1, Right: 2},
					{Leaf: true, Value: 0.1},
					{Leaf: true, Value: 0.9},
				},
			}},
		},
		Features: []string{"sales_count"},
	}
	return &RankingService{
		ProductRepository:   stubProductRepository{products: products},
		DailyStatRepository: stubDailyStatRepository{stats: stats},
		Scorer:              ranking.NewScorer(artifact),
		Logger:              zap.NewNop().Sugar(),
	}
}

var testProducts = []domain.Product{
	{ID: 1, Name: "Salmon Steak", Price: 220, Margin: 0.35},
	{ID: 2, Name: "Fried Calamari", Price: 150, Margin: 0.4},
}

func Test_Rank(t *testing.T) {
	stats := []domain.DailyStat{
		{ProductID: 1, Date: "2025-09-01", SalesCount: 2, ConversionRate: 0.1},
		{ProductID: 2, Date: "2025-09-01", SalesCount: 9, ConversionRate: 0.2},
		{ProductID: 1, Date: "2025-09-02", SalesCount: 3, ConversionRate: 0.1},
	}
	svc := salesStumpService(testProducts, stats)

	t.Run("ranks products by mean score", func(t *testing.T) {
		out, err := svc.Rank(domain.Span{}, 20, false)
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.RankedResult{
					{Rank: 1, ProductID: 2, Name: "Fried Calamari", Price: 150, Margin: 0.4, Score: 0.9},
					{Rank: 2, ProductID: 1, Name: "Salmon Steak", Price: 220, Margin: 0.35, Score: 0.1},
				},
				out,
			),
		)
	})

	t.Run("empty range yields an empty list, not an error", func(t *testing.T) {
		out, err := svc.Rank(domain.Day("2030-01-01"), 20, true)
		require.NoError(t, err)
		require.NotNil(t, out)
		require.Empty(t, out)
	})

	t.Run("top_k truncates after ranks are assigned", func(t *testing.T) {
		out, err := svc.Rank(domain.Span{}, 1, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, 1, out[0].Rank)
		require.Equal(t, int64(2), out[0].ProductID)
	})

	t.Run("single day", func(t *testing.T) {
		out, err := svc.RankForDay("2025-09-02", 20, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, int64(1), out[0].ProductID)
	})

	t.Run("missing manifest column aborts the request", func(t *testing.T) {
		broken := salesStumpService(testProducts, stats)
		broken.Scorer = ranking.NewScorer(&gbrt.Artifact{
			Ensemble: &gbrt.Ensemble{LearningRate: 1, Trees: []gbrt.Tree{{
				Nodes: []gbrt.Node{{Leaf: true, Value: 1}},
			}}},
			Features: []string{"holiday_flag"},
		})

		_, err := broken.Rank(domain.Span{}, 20, false)
		require.ErrorIs(t, err, ranking.ErrMissingColumn)
	})
}

func Test_Series(t *testing.T) {
	stats := []domain.DailyStat{
		{ProductID: 1, Date: "2025-09-02", SalesCount: 9, ConversionRate: 0.1},
		{ProductID: 1, Date: "2025-09-01", SalesCount: 2, ConversionRate: 0.1},
		// duplicate stats for one day average out
		{ProductID: 1, Date: "2025-09-01", SalesCount: 9, ConversionRate: 0.1},
		{ProductID: 2, Date: "2025-09-01", SalesCount: 9, ConversionRate: 0.2},
	}
	svc := salesStumpService(testProducts, stats)

	out, err := svc.Series(1, domain.Span{})
	require.NoError(t, err)
	require.Equal(
		t,
		"",
		cmp.Diff(
			[]domain.ScorePoint{
				{Date: "2025-09-01", Score: 0.5},
				{Date: "2025-09-02", Score: 0.9},
			},
			out,
		),
	)
}

func Test_Share(t *testing.T) {
	stats := []domain.DailyStat{
		{ProductID: 1, Date: "2025-09-01", SalesCount: 4},
		{ProductID: 2, Date: "2025-09-01", SalesCount: 9},
		{ProductID: 1, Date: "2025-09-02", SalesCount: 8},
	}
	svc := salesStumpService(testProducts, stats)

	t.Run("totals sales volume per product", func(t *testing.T) {
		out, err := svc.Share(domain.Span{}, 10)
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.SalesShare{
					{ProductID: 1, Name: "Salmon Steak", SalesCount: 12},
					{ProductID: 2, Name: "Fried Calamari", SalesCount: 9},
				},
				out,
			),
		)
	})

	t.Run("respects top_k", func(t *testing.T) {
		out, err := svc.Share(domain.Span{}, 1)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, int64(1), out[0].ProductID)
	})

	t.Run("empty range yields an empty list", func(t *testing.T) {
		out, err := svc.Share(domain.Day("2030-01-01"), 10)
		require.NoError(t, err)
		require.Empty(t, out)
	})
}
