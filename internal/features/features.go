// Package features builds the canonical numeric feature table that
// both training and scoring consume. Column names and their order are
// a contract: the training manifest records them and the scorer
// selects by them.
package features

import (
	"menurank/internal/domain"
	"menurank/internal/util"
)

// Base statistics-derived features first, then enrichment features.
var (
	BasicFeatures = []string{"price", "margin", "sales_count", "cr"}
	ExtraFeatures = []string{"unit_profit", "aov", "ppc", "is_signature"}
)

// Columns returns the full feature column list in canonical order.
func Columns() []string {
	cols := make([]string, 0, len(BasicFeatures)+len(ExtraFeatures))
	cols = append(cols, BasicFeatures...)
	cols = append(cols, ExtraFeatures...)
	return cols
}

// There is no real category source; products are assigned a label
// cyclically for UI display only.
var categoryPalette = []string{"Roll", "Sandwich", "Salad", "Bowl", "Drink"}

const fallbackCategory = "Other"

// ppc has no upstream signal yet, every product gets the same proxy
const pricePerClickProxy = 0.5

func categoryFor(id int64) string {
	n := int64(len(categoryPalette))
	return categoryPalette[((id-1)%n+n)%n]
}

type enrichedProduct struct {
	price       float64
	margin      float64
	unitProfit  float64
	aov         float64
	ppc         float64
	isSignature float64
	category    string
}

func enrichProducts(products []domain.Product) map[int64]enrichedProduct {
	out := make(map[int64]enrichedProduct, len(products))
	for _, p := range products {
		e := enrichedProduct{
			price:    util.Finite(p.Price),
			margin:   util.Finite(p.Margin),
			ppc:      pricePerClickProxy,
			category: categoryFor(p.ID),
		}
		if p.ID%3 == 0 {
			e.isSignature = 1
		}
		e.aov = e.price
		e.unitProfit = e.price * e.margin
		out[p.ID] = e
	}
	return out
}

// BuildFrame left-joins statistics onto the enriched catalog: every
// statistics row yields exactly one feature row, products with no
// statistics are absent, and unknown product ids get zero-valued
// product-side features. Output is deterministic given identical
// inputs and never fails on missing optional data.
func BuildFrame(products []domain.Product, stats []domain.DailyStat) *domain.FeatureTable {
	enriched := enrichProducts(products)

	hasDates := false
	for _, s := range stats {
		if s.Date != "" {
			hasDates = true
			break
		}
	}

	t := &domain.FeatureTable{
		ProductIDs: make([]int64, 0, len(stats)),
		Categories: make([]string, 0, len(stats)),
		Columns:    Columns(),
		Values:     make([][]float64, 0, len(stats)),
	}
	if hasDates {
		t.Dates = make([]string, 0, len(stats))
	}

	for _, s := range stats {
		e, ok := enriched[s.ProductID]
		if !ok {
			e = enrichedProduct{category: fallbackCategory}
		}
		row := []float64{
			e.price,
			e.margin,
			util.Finite(s.SalesCount),
			util.Finite(s.ConversionRate),
			e.unitProfit,
			e.aov,
			e.ppc,
			e.isSignature,
		}
		t.ProductIDs = append(t.ProductIDs, s.ProductID)
		t.Categories = append(t.Categories, e.category)
		t.Values = append(t.Values, row)
		if hasDates {
			t.Dates = append(t.Dates, s.Date)
		}
	}
	return t
}
