package usda

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
	"golang.org/x/time/rate"

	"github.com/foodgapp/backend/internal/domain"
)

const providerName = "USDA"

// requestTimeout bounds every outbound call.
const requestTimeout = 7 * time.Second

// Client is the USDA FoodData Central provider adapter. It is the primary
// external source: it carries both macronutrients and a rich micronutrient
// set.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new USDA adapter. An empty apiKey produces a client
// that declines every lookup without touching the network.
func NewClient(apiKey, baseURL string) *Client {
	// USDA allows 1000 requests per hour: ~0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Name returns the provider's source label.
func (c *Client) Name() string {
	return providerName
}

// searchResponse is the subset of the FoodData Central search payload the
// adapter reads. Only the first result entry is used.
type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup queries FoodData Central for foodName and returns a record scaled
// to grams. Values are reported per 100 g; calories are derived via the
// Atwater formula from the scaled macros for consistency across providers.
func (c *Client) Lookup(ctx context.Context, foodName string, grams float64) (*domain.NutrientRecord, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrProviderFailure, err)
	}

	params := url.Values{}
	params.Add("query", foodName)
	params.Add("api_key", c.apiKey)
	params.Add("pageSize", "1")
	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	req.Header.Set("User-Agent", "FoodGapp/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrNoData, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrProviderFailure, err)
	}
	if len(parsed.Foods) == 0 {
		return nil, domain.ErrNoData
	}

	// Values are keyed by nutrient name; units ride along for the
	// micronutrient summary.
	type reading struct {
		value float64
		unit  string
	}
	nutrients := make(map[string]reading)
	for _, n := range parsed.Foods[0].FoodNutrients {
		nutrients[n.NutrientName] = reading{n.Value, strings.ToLower(n.UnitName)}
	}

	factor := grams / 100
	protein := nutrients["Protein"].value * factor
	fat := nutrients["Total lipid (fat)"].value * factor
	carbs := nutrients["Carbohydrate, by difference"].value * factor
	sugar := nutrients["Sugars, total including NLEA"].value * factor
	if sugar == 0 {
		sugar = nutrients["Total Sugars"].value * factor
	}

	micro := func(name, label string) domain.MicroNutrient {
		r := nutrients[name]
		return domain.MicroNutrient{Name: label, Value: r.value * factor, Unit: r.unit}
	}
	microSummary := domain.FormatMicroNutrients([]domain.MicroNutrient{
		micro("Fiber, total dietary", "Fiber"),
		micro("Sodium, Na", "Sodium"),
		micro("Potassium, K", "Potassium"),
		micro("Vitamin A, RAE", "Vitamin A"),
		micro("Vitamin C, total ascorbic acid", "Vitamin C"),
		micro("Calcium, Ca", "Calcium"),
		micro("Iron, Fe", "Iron"),
		micro("Cholesterol", "Cholesterol"),
	})

	return &domain.NutrientRecord{
		ID:             uuid.NewString(),
		FoodID:         strings.ToLower(foodName),
		CategoryID:     providerName,
		Calories:       domain.Round2(domain.AtwaterCalories(protein, carbs, fat)),
		Protein:        domain.Round2(protein),
		Fat:            domain.Round2(fat),
		Carbs:          domain.Round2(carbs),
		Sugar:          domain.Round2(sugar),
		MicroNutrients: microSummary,
		GramAmount:     grams,
		Source:         providerName,
		LookupPath:     providerName,
	}, nil
}
