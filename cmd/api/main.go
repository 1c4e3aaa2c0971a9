package main

import (
	"menurank/api"
	"menurank/internal/config"
	"menurank/internal/gbrt"
	"menurank/internal/logger"
	"menurank/internal/ranking"
	"menurank/internal/repository"
	"menurank/internal/service"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// loaded once, held immutable for the life of the process
	artifact, err := gbrt.LoadArtifact(cfg.ModelPath)
	if err != nil {
		log.Fatalf("failed to load model artifact from %s: %v", cfg.ModelPath, err)
	}

	handler := api.ApiHandler{
		RankingService: &service.RankingService{
			ProductRepository:   repository.NewProductRepository(cfg.ProductsPath()),
			DailyStatRepository: repository.NewDailyStatRepository(cfg.DailyStatsPath()),
			Scorer:              ranking.NewScorer(artifact),
			ExportsDir:          cfg.ExportsDir(),
			ReportsDir:          cfg.ReportsDir(),
			Logger:              log,
		},
		Logger: log,
	}

	log.Infow("starting api", "port", cfg.Port, "model", cfg.ModelPath)
	if err := handler.StartApi(cfg.Port); err != nil {
		log.Fatalf("api stopped: %v", err)
	}
}
