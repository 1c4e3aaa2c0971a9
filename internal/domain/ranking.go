package domain

// ScoredRow is one model prediction for a (product, date) feature row.
// Date is empty when the scored table carried no dates.
type ScoredRow struct {
	ProductID int64
	Date      string
	Score     float64
}

// RankedResult is a product's aggregated standing across a date
// range. Rank is a gapless 1-based position; ScoreNorm is only set
// when normalization was requested and spans [0,100] over the
// aggregated set.
type RankedResult struct {
	Rank      int      `json:"rank"`
	ProductID int64    `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Margin    float64  `json:"margin"`
	Score     float64  `json:"score"`
	ScoreNorm *float64 `json:"score_norm,omitempty"`
}

// ScorePoint is one day of a single product's score series.
type ScorePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// SalesShare is a raw sales-volume aggregate; it never touches the
// model.
type SalesShare struct {
	ProductID  int64   `json:"product_id"`
	Name       string  `json:"name"`
	SalesCount float64 `json:"sales_count"`
}
