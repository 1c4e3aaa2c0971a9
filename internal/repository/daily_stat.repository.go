package repository

import (
	"fmt"
	"os"

	"menurank/internal/domain"
	"menurank/internal/util"

	"github.com/gocarina/gocsv"
)

type DailyStatRepository interface {
	// List returns all statistics rows whose date falls inside the
	// span, in file order. An empty result is not an error.
	List(span domain.Span) ([]domain.DailyStat, error)
}

type dailyStatRepositoryHandler struct {
	path string
}

func NewDailyStatRepository(path string) DailyStatRepository {
	return dailyStatRepositoryHandler{path: path}
}

type dailyStatRow struct {
	ProductID      string `csv:"product_id"`
	Date           string `csv:"date"`
	SalesCount     string `csv:"sales_count"`
	ConversionRate string `csv:"cr"`
}

func (h dailyStatRepositoryHandler) List(span domain.Span) ([]domain.DailyStat, error) {
	f, err := os.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open daily statistics: %w", err)
	}
	defer f.Close()

	rows := []dailyStatRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse daily statistics %s: %w", h.path, err)
	}

	out := []domain.DailyStat{}
	for _, r := range rows {
		if !span.Contains(r.Date) {
			continue
		}
		out = append(out, domain.DailyStat{
			ProductID:      util.CoerceInt(r.ProductID),
			Date:           r.Date,
			SalesCount:     util.CoerceFloat(r.SalesCount),
			ConversionRate: util.CoerceFloat(r.ConversionRate),
		})
	}
	return out, nil
}
