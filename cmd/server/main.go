package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/foodgapp/backend/config"
	httpDelivery "github.com/foodgapp/backend/internal/delivery/http"
	"github.com/foodgapp/backend/internal/domain"
	"github.com/foodgapp/backend/internal/infrastructure/apininjas"
	"github.com/foodgapp/backend/internal/infrastructure/cache"
	"github.com/foodgapp/backend/internal/infrastructure/dataset"
	"github.com/foodgapp/backend/internal/infrastructure/edamam"
	"github.com/foodgapp/backend/internal/infrastructure/usda"
	"github.com/foodgapp/backend/internal/infrastructure/vision"
	"github.com/foodgapp/backend/internal/usecase"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FoodGapp Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	index := dataset.Load(cfg.Dataset.Path)
	log.Printf("Dataset: %s (%d rows)", cfg.Dataset.Path, index.Len())

	resultCache := cache.NewMemory()

	providers := []domain.NutritionProvider{
		usda.NewClient(cfg.Providers.USDA.APIKey, cfg.Providers.USDA.BaseURL),
		edamam.NewClient(cfg.Providers.Edamam.AppID, cfg.Providers.Edamam.AppKey, cfg.Providers.Edamam.BaseURL),
		apininjas.NewClient(cfg.Providers.APINinjas.APIKey, cfg.Providers.APINinjas.BaseURL),
	}
	logProviderStatus(cfg)

	resolver := usecase.NewResolver(index, resultCache, providers)

	var recognizer domain.FoodRecognizer
	if cfg.Vision.Enabled {
		rek, err := vision.NewRecognizer(context.Background(), cfg.Vision.Region)
		if err != nil {
			log.Printf("WARNING: image recognition disabled: %v", err)
		} else {
			recognizer = rek
			log.Printf("Image recognition enabled (region %s)", cfg.Vision.Region)
		}
	}

	providerNames := make([]string, len(providers))
	for i, p := range providers {
		providerNames[i] = p.Name()
	}

	handler := httpDelivery.NewHandler(resolver, recognizer, index.Len(), providerNames)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// logProviderStatus warns about every provider that will decline lookups
// because its credentials are missing.
func logProviderStatus(cfg *config.Config) {
	if cfg.Providers.USDA.APIKey == "" {
		log.Printf("WARNING: USDA API key not set (USDA fallback disabled)")
	}
	if cfg.Providers.Edamam.AppID == "" || cfg.Providers.Edamam.AppKey == "" {
		log.Printf("WARNING: Edamam credentials not set (Edamam fallback disabled)")
	}
	if cfg.Providers.APINinjas.APIKey == "" {
		log.Printf("WARNING: API Ninjas key not set (API Ninjas fallback disabled)")
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
