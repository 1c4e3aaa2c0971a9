package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"menurank/internal/config"
	"menurank/internal/logger"
	"menurank/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var sampleProductNames = []string{
	"Grilled Sea Bass Sandwich",
	"Salmon Steak",
	"Pan-Fried Bream",
	"Shrimp Casserole",
	"Fried Calamari",
	"Stuffed Mussels",
	"Grilled Sardines",
	"Mackerel Plate",
	"Anchovy Fry",
	"Grouper Skewer",
}

type productCSV struct {
	ID     int64   `csv:"id"`
	Name   string  `csv:"name"`
	Price  int     `csv:"price"`
	Margin float64 `csv:"margin"`
}

type dailyStatCSV struct {
	ProductID  int64   `csv:"product_id"`
	Date       string  `csv:"date"`
	SalesCount int     `csv:"sales_count"`
	CR         float64 `csv:"cr"`
}

func newMakedataCmd() *cobra.Command {
	var (
		dir   string
		seed  int64
		days  int
		start string
	)

	cmd := &cobra.Command{
		Use:   "makedata",
		Short: "Generate a seeded synthetic catalog and daily statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			if dir == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				dir = cfg.DataDir
			}
			startDate, err := time.Parse(util.DateLayout, start)
			if err != nil {
				return fmt.Errorf("failed to parse start date %q: %w", start, err)
			}

			rawDir := filepath.Join(dir, "raw")
			if err := os.MkdirAll(rawDir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			rng := rand.New(rand.NewSource(seed))

			products := make([]productCSV, len(sampleProductNames))
			for i, name := range sampleProductNames {
				products[i] = productCSV{
					ID:     int64(i + 1),
					Name:   name,
					Price:  120 + rng.Intn(180),
					Margin: math.Round((0.20+rng.Float64()*0.35)*100) / 100,
				}
			}

			statRows := make([]dailyStatCSV, 0, days*len(products))
			for d := 0; d < days; d++ {
				date := util.FormatDate(startDate.AddDate(0, 0, d))
				for _, p := range products {
					statRows = append(statRows, dailyStatCSV{
						ProductID:  p.ID,
						Date:       date,
						SalesCount: rng.Intn(40),
						CR:         0.05 + rng.Float64()*0.20,
					})
				}
			}

			productsPath := filepath.Join(rawDir, "products.csv")
			statsPath := filepath.Join(rawDir, "daily_stats.csv")
			if err := writeCSV(productsPath, &products); err != nil {
				return err
			}
			if err := writeCSV(statsPath, &statRows); err != nil {
				return err
			}
			log.Infow("dataset written",
				"products", productsPath,
				"stats", statsPath,
				"rows", len(statRows),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "data directory (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "rng seed")
	cmd.Flags().IntVar(&days, "days", 30, "days of statistics to generate")
	cmd.Flags().StringVar(&start, "start", "2025-09-01", "first statistics date")
	return cmd
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
