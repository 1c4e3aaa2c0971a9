package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"menurank/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_WriteRankingCSV(t *testing.T) {
	now := time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC)
	rows := []domain.RankedResult{
		{Rank: 1, ProductID: 2, Name: "Fried Calamari", Price: 150, Margin: 0.4, Score: 0.9},
		{Rank: 2, ProductID: 1, Name: "Salmon Steak", Price: 220, Margin: 0.35, Score: 0.1},
	}

	t.Run("writes timestamp-keyed file", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteRankingCSV(dir, "2025-09-01", "2025-09-30", rows, now)
		require.NoError(t, err)
		require.Contains(t, path, "ranking_2025-09-01_2025-09-30_20251002_093000.csv")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 3)
		require.Equal(t, "rank,product_id,name,price,margin,score", lines[0])
		require.True(t, strings.HasPrefix(lines[1], "1,2,Fried Calamari"))
	})

	t.Run("includes score_norm only when present", func(t *testing.T) {
		dir := t.TempDir()
		norm := 100.0
		normed := []domain.RankedResult{rows[0]}
		normed[0].ScoreNorm = &norm

		path, err := WriteRankingCSV(dir, "2025-09-01", "2025-09-30", normed, now)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "score_norm")
		require.Contains(t, string(content), "100")
	})
}

func Test_WriteRankingPDF(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC)
	rows := []domain.RankedResult{
		{Rank: 1, ProductID: 1, Name: "Salmon Steak", Price: 220, Margin: 0.35, Score: 0.42},
	}

	path, err := WriteRankingPDF(dir, "2025-09-01", "2025-09-30", rows, now)
	require.NoError(t, err)
	require.Contains(t, path, "report_2025-09-01_2025-09-30_20251002_093000.pdf")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
