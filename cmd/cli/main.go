package main

import (
	"fmt"
	"os"

	"menurank/internal/config"
	"menurank/internal/domain"
	"menurank/internal/features"
	"menurank/internal/gbrt"
	"menurank/internal/logger"
	"menurank/internal/ranking"
	"menurank/internal/repository"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "menurank",
		Short:         "Offline jobs for the menu ranking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrainCmd(), newMakedataCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTrainCmd() *cobra.Command {
	var (
		productsPath string
		statsPath    string
		outPath      string
		rounds       int
		learningRate float64
		leaves       int
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the ranking model from the raw CSVs and persist the artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if productsPath == "" {
				productsPath = cfg.ProductsPath()
			}
			if statsPath == "" {
				statsPath = cfg.DailyStatsPath()
			}
			if outPath == "" {
				outPath = cfg.ModelPath
			}

			products, err := repository.NewProductRepository(productsPath).List()
			if err != nil {
				return err
			}
			stats, err := repository.NewDailyStatRepository(statsPath).List(domain.Span{})
			if err != nil {
				return err
			}
			log.Infow("training data loaded", "products", len(products), "stats", len(stats))

			frame := features.BuildFrame(products, stats)

			trainCfg := gbrt.DefaultConfig()
			trainCfg.NumRounds = rounds
			trainCfg.LearningRate = learningRate
			trainCfg.NumLeaves = leaves

			artifact, err := ranking.TrainModel(frame, trainCfg)
			if err != nil {
				return err
			}
			if err := artifact.Save(outPath); err != nil {
				return err
			}
			log.Infow("model saved", "path", outPath, "features", artifact.Features)
			return nil
		},
	}

	defaults := gbrt.DefaultConfig()
	cmd.Flags().StringVar(&productsPath, "products", "", "product catalog CSV (default from config)")
	cmd.Flags().StringVar(&statsPath, "stats", "", "daily statistics CSV (default from config)")
	cmd.Flags().StringVar(&outPath, "out", "", "model artifact output path (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", defaults.NumRounds, "boosting rounds")
	cmd.Flags().Float64Var(&learningRate, "learning-rate", defaults.LearningRate, "shrinkage per round")
	cmd.Flags().IntVar(&leaves, "leaves", defaults.NumLeaves, "max leaves per tree")
	return cmd
}
