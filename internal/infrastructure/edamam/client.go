package edamam

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

const providerName = "Edamam"

const requestTimeout = 7 * time.Second

// Client is the Edamam nutrition-data provider adapter. It sits between USDA
// and API Ninjas in the fallback chain.
type Client struct {
	httpClient *http.Client
	appID      string
	appKey     string
	baseURL    string
}

// NewClient creates a new Edamam adapter. Missing credentials produce a
// client that declines every lookup without touching the network.
func NewClient(appID, appKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		appID:      appID,
		appKey:     appKey,
		baseURL:    baseURL,
	}
}

// Name returns the provider's source label.
func (c *Client) Name() string {
	return providerName
}

// nutrient is one totalNutrients entry in the Edamam payload.
type nutrient struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type nutritionResponse struct {
	Calories       float64             `json:"calories"`
	TotalNutrients map[string]nutrient `json:"totalNutrients"`
}

// Lookup queries the nutrition-data endpoint with a fixed "100g <food>"
// ingredient line and scales the per-100g result to grams.
func (c *Client) Lookup(ctx context.Context, foodName string, grams float64) (*domain.NutrientRecord, error) {
	if c.appID == "" || c.appKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	params := url.Values{}
	params.Add("app_id", c.appID)
	params.Add("app_key", c.appKey)
	params.Add("ingr", fmt.Sprintf("100g %s", foodName))
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrNoData, resp.StatusCode)
	}

	var parsed nutritionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrProviderFailure, err)
	}

	factor := grams / 100
	quantity := func(code string) float64 {
		return parsed.TotalNutrients[code].Quantity * factor
	}

	protein := quantity("PROCNT")
	fat := quantity("FAT")
	carbs := quantity("CHOCDF")
	if protein == 0 && fat == 0 && carbs == 0 {
		return nil, domain.ErrNoData
	}

	micro := func(code, label string) domain.MicroNutrient {
		n := parsed.TotalNutrients[code]
		return domain.MicroNutrient{Name: label, Value: n.Quantity * factor, Unit: strings.ToLower(n.Unit)}
	}
	microSummary := domain.FormatMicroNutrients([]domain.MicroNutrient{
		micro("FIBTG", "Fiber"),
		micro("NA", "Sodium"),
		micro("K", "Potassium"),
		micro("VITA_RAE", "Vitamin A"),
		micro("VITC", "Vitamin C"),
		micro("CA", "Calcium"),
		micro("FE", "Iron"),
		micro("CHOLE", "Cholesterol"),
	})

	return &domain.NutrientRecord{
		ID:             uuid.NewString(),
		FoodID:         strings.ToLower(foodName),
		CategoryID:     providerName,
		Calories:       domain.Round2(domain.AtwaterCalories(protein, carbs, fat)),
		Protein:        domain.Round2(protein),
		Fat:            domain.Round2(fat),
		Carbs:          domain.Round2(carbs),
		Sugar:          domain.Round2(quantity("SUGAR")),
		MicroNutrients: microSummary,
		GramAmount:     grams,
		Source:         providerName,
		LookupPath:     providerName,
	}, nil
}
