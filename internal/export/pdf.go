package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"menurank/internal/domain"

	"github.com/go-pdf/fpdf"
)

// WriteRankingPDF renders the ranked rows as a one-table report.
func WriteRankingPDF(dir, start, end string, rows []domain.RankedResult, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("report_%s_%s_%s.pdf", start, end, now.Format(timestampLayout)))

	withNorm := len(rows) > 0 && rows[0].ScoreNorm != nil
	headers := []string{"#", "Product", "Price", "Margin", "Score"}
	widths := []float64{12, 70, 25, 25, 28}
	if withNorm {
		headers = append(headers, "Score (0-100)")
		widths = append(widths, 30)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "MenuRank - Ranking Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date range: %s to %s", start, end), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(34, 34, 34)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, r := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(211, 211, 211)
		}
		cells := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%.2f", r.Margin),
			fmt.Sprintf("%.4f", r.Score),
		}
		if withNorm {
			cells = append(cells, fmt.Sprintf("%.1f", *r.ScoreNorm))
		}
		for c, cell := range cells {
			pdf.CellFormat(widths[c], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return path, nil
}
