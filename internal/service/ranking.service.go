package service

import (
	"fmt"
	"sort"
	"time"

	"menurank/internal/domain"
	"menurank/internal/export"
	"menurank/internal/features"
	"menurank/internal/ranking"
	"menurank/internal/repository"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// RankingService wires the raw data sources, the loaded model and the
// aggregation pipeline into the serving operations. The Scorer is
// immutable, so one service value serves concurrent requests.
type RankingService struct {
	ProductRepository   repository.ProductRepository
	DailyStatRepository repository.DailyStatRepository
	Scorer              *ranking.Scorer
	ExportsDir          string
	ReportsDir          string
	Logger              *zap.SugaredLogger
}

// Rank scores every statistics row in the range, averages per
// product, and returns the top rows. A range with no statistics
// yields an empty result, not an error.
func (s *RankingService) Rank(span domain.Span, topK int, normalize bool) ([]domain.RankedResult, error) {
	dailyStats, err := s.DailyStatRepository.List(span)
	if err != nil {
		return nil, err
	}
	if len(dailyStats) == 0 {
		return []domain.RankedResult{}, nil
	}

	products, err := s.ProductRepository.List()
	if err != nil {
		return nil, err
	}

	frame := features.BuildFrame(products, dailyStats)
	scored, err := s.Scorer.Score(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to score feature frame: %w", err)
	}

	ranked, err := ranking.Aggregate(scored, products, normalize)
	if err != nil {
		return nil, err
	}
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

func (s *RankingService) RankForDay(day string, topK int, normalize bool) ([]domain.RankedResult, error) {
	return s.Rank(domain.Day(day), topK, normalize)
}

// Series returns one product's per-day mean score across the range,
// ascending by date. Duplicate statistics for a date average out.
func (s *RankingService) Series(productID int64, span domain.Span) ([]domain.ScorePoint, error) {
	dailyStats, err := s.DailyStatRepository.List(span)
	if err != nil {
		return nil, err
	}
	if len(dailyStats) == 0 {
		return []domain.ScorePoint{}, nil
	}

	products, err := s.ProductRepository.List()
	if err != nil {
		return nil, err
	}

	frame := features.BuildFrame(products, dailyStats)
	scored, err := s.Scorer.Score(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to score feature frame: %w", err)
	}

	scoresByDate := map[string][]float64{}
	for _, row := range scored {
		if row.ProductID == productID {
			scoresByDate[row.Date] = append(scoresByDate[row.Date], row.Score)
		}
	}

	out := make([]domain.ScorePoint, 0, len(scoresByDate))
	for date, scores := range scoresByDate {
		mean, err := stats.Mean(scores)
		if err != nil {
			return nil, fmt.Errorf("failed to average series for product %d: %w", productID, err)
		}
		out = append(out, domain.ScorePoint{Date: date, Score: mean})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Date < out[b].Date
	})
	return out, nil
}

// Share totals raw sales volume per product over the range. This path
// bypasses the model entirely.
func (s *RankingService) Share(span domain.Span, topK int) ([]domain.SalesShare, error) {
	dailyStats, err := s.DailyStatRepository.List(span)
	if err != nil {
		return nil, err
	}
	if len(dailyStats) == 0 {
		return []domain.SalesShare{}, nil
	}

	products, err := s.ProductRepository.List()
	if err != nil {
		return nil, err
	}
	nameByID := make(map[int64]string, len(products))
	for _, p := range products {
		nameByID[p.ID] = p.Name
	}

	totals := map[int64]float64{}
	for _, st := range dailyStats {
		totals[st.ProductID] += st.SalesCount
	}

	out := make([]domain.SalesShare, 0, len(totals))
	for id, total := range totals {
		out = append(out, domain.SalesShare{
			ProductID:  id,
			Name:       nameByID[id],
			SalesCount: total,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].ProductID < out[b].ProductID
	})
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].SalesCount > out[b].SalesCount
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// ExportCSV ranks the range and writes the result as a CSV snapshot.
// Zero returned rows means there was nothing to export and no file
// was written.
func (s *RankingService) ExportCSV(start, end string, topK int, normalize bool) (string, int, error) {
	ranked, err := s.Rank(domain.NewSpan(&start, &end), topK, normalize)
	if err != nil {
		return "", 0, err
	}
	if len(ranked) == 0 {
		return "", 0, nil
	}
	path, err := export.WriteRankingCSV(s.ExportsDir, start, end, ranked, time.Now())
	if err != nil {
		return "", 0, err
	}
	s.Logger.Infow("ranking exported", "file", path, "rows", len(ranked))
	return path, len(ranked), nil
}

// ReportPDF ranks the range and renders the result as a PDF report.
func (s *RankingService) ReportPDF(start, end string, topK int, normalize bool) (string, int, error) {
	ranked, err := s.Rank(domain.NewSpan(&start, &end), topK, normalize)
	if err != nil {
		return "", 0, err
	}
	if len(ranked) == 0 {
		return "", 0, nil
	}
	path, err := export.WriteRankingPDF(s.ReportsDir, start, end, ranked, time.Now())
	if err != nil {
		return "", 0, err
	}
	s.Logger.Infow("ranking report written", "file", path, "rows", len(ranked))
	return path, len(ranked), nil
}
