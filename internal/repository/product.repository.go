package repository

import (
	"fmt"
	"os"

	"menurank/internal/domain"
	"menurank/internal/util"

	"github.com/gocarina/gocsv"
)

type ProductRepository interface {
	List() ([]domain.Product, error)
}

type productRepositoryHandler struct {
	path string
}

func NewProductRepository(path string) ProductRepository {
	return productRepositoryHandler{path: path}
}

// raw CSV shape; numeric fields stay strings so malformed cells can be
// zero-coerced instead of failing the whole file
type productRow struct {
	ID     string `csv:"id"`
	Name   string `csv:"name"`
	Price  string `csv:"price"`
	Margin string `csv:"margin"`
}

func (h productRepositoryHandler) List() ([]domain.Product, error) {
	f, err := os.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product catalog: %w", err)
	}
	defer f.Close()

	rows := []productRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse product catalog %s: %w", h.path, err)
	}

	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Product{
			ID:     util.CoerceInt(r.ID),
			Name:   r.Name,
			Price:  util.CoerceFloat(r.Price),
			Margin: util.CoerceFloat(r.Margin),
		})
	}
	return out, nil
}
