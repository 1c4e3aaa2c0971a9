package domain

// Product is immutable catalog reference data, sourced from the
// products CSV. It is never written by this service.
type Product struct {
	ID     int64   `json:"product_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Margin float64 `json:"margin"`
}

// DailyStat is one observed sales fact for a product on a calendar
// date. Duplicate (product, date) rows are kept as-is and will
// double-count downstream.
type DailyStat struct {
	ProductID      int64
	Date           string // ISO YYYY-MM-DD, may be empty
	SalesCount     float64
	ConversionRate float64
}
