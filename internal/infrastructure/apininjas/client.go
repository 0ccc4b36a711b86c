package apininjas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodgapp/backend/internal/domain"
)

const providerName = "API_Ninjas"

const requestTimeout = 7 * time.Second

// Client is the API Ninjas nutrition provider adapter, the last source in
// the fallback chain. The gram amount is embedded in the query text ("100 g
// <food>") and the per-100g result is scaled linearly.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a new API Ninjas adapter. An empty apiKey produces a
// client that declines every lookup without touching the network.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// Name returns the provider's source label.
func (c *Client) Name() string {
	return providerName
}

// nutritionItem is one entry of the API Ninjas response array. Only the
// first entry is used.
type nutritionItem struct {
	ProteinG       float64 `json:"protein_g"`
	FatTotalG      float64 `json:"fat_total_g"`
	CarbohydratesG float64 `json:"carbohydrates_total_g"`
	SugarG         float64 `json:"sugar_g"`
	FiberG         float64 `json:"fiber_g"`
	SodiumMg       float64 `json:"sodium_mg"`
	PotassiumMg    float64 `json:"potassium_mg"`
	CholesterolMg  float64 `json:"cholesterol_mg"`
}

// Lookup queries the nutrition endpoint and returns a record scaled to grams.
func (c *Client) Lookup(ctx context.Context, foodName string, grams float64) (*domain.NutrientRecord, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	params := url.Values{}
	params.Add("query", fmt.Sprintf("100 g %s", foodName))
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrNoData, resp.StatusCode)
	}

	var items []nutritionItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrProviderFailure, err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoData
	}

	item := items[0]
	factor := grams / 100
	protein := item.ProteinG * factor
	fat := item.FatTotalG * factor
	carbs := item.CarbohydratesG * factor

	microSummary := domain.FormatMicroNutrients([]domain.MicroNutrient{
		{Name: "Fiber", Value: item.FiberG * factor, Unit: "g"},
		{Name: "Sodium", Value: item.SodiumMg * factor, Unit: "mg"},
		{Name: "Potassium", Value: item.PotassiumMg * factor, Unit: "mg"},
		{Name: "Cholesterol", Value: item.CholesterolMg * factor, Unit: "mg"},
	})

	return &domain.NutrientRecord{
		ID:             uuid.NewString(),
		FoodID:         strings.ToLower(foodName),
		CategoryID:     providerName,
		Calories:       domain.Round2(domain.AtwaterCalories(protein, carbs, fat)),
		Protein:        domain.Round2(protein),
		Fat:            domain.Round2(fat),
		Carbs:          domain.Round2(carbs),
		Sugar:          domain.Round2(item.SugarG * factor),
		MicroNutrients: microSummary,
		GramAmount:     grams,
		Source:         providerName,
		LookupPath:     providerName,
	}, nil
}
