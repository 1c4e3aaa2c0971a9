// Package export renders ranked results to derivative CSV and PDF
// snapshots. Output filenames are keyed by range and timestamp, so
// concurrent exports never share a destination.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"menurank/internal/domain"

	"github.com/gocarina/gocsv"
)

const timestampLayout = "20060102_150405"

type rankedCSVRow struct {
	Rank      int     `csv:"rank"`
	ProductID int64   `csv:"product_id"`
	Name      string  `csv:"name"`
	Price     float64 `csv:"price"`
	Margin    float64 `csv:"margin"`
	Score     float64 `csv:"score"`
}

type rankedCSVRowNorm struct {
	rankedCSVRow
	ScoreNorm float64 `csv:"score_norm"`
}

// WriteRankingCSV writes the ranked rows as they were served; the
// score_norm column appears only when normalization produced it.
func WriteRankingCSV(dir, start, end string, rows []domain.RankedResult, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("ranking_%s_%s_%s.csv", start, end, now.Format(timestampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	withNorm := len(rows) > 0 && rows[0].ScoreNorm != nil
	if withNorm {
		out := make([]rankedCSVRowNorm, len(rows))
		for i, r := range rows {
			out[i] = rankedCSVRowNorm{rankedCSVRow: toCSVRow(r), ScoreNorm: *r.ScoreNorm}
		}
		err = gocsv.MarshalFile(&out, f)
	} else {
		out := make([]rankedCSVRow, len(rows))
		for i, r := range rows {
			out[i] = toCSVRow(r)
		}
		err = gocsv.MarshalFile(&out, f)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return path, nil
}

func toCSVRow(r domain.RankedResult) rankedCSVRow {
	return rankedCSVRow{
		Rank:      r.Rank,
		ProductID: r.ProductID,
		Name:      r.Name,
		Price:     r.Price,
		Margin:    r.Margin,
		Score:     r.Score,
	}
}
