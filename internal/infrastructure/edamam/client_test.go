package edamam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgapp/backend/internal/domain"
)

const nutritionPayload = `{
	"calories": 130,
	"totalNutrients": {
		"PROCNT": {"quantity": 10, "unit": "g"},
		"FAT": {"quantity": 5, "unit": "g"},
		"CHOCDF": {"quantity": 20, "unit": "g"},
		"SUGAR": {"quantity": 3, "unit": "g"},
		"NA": {"quantity": 300, "unit": "MG"},
		"FE": {"quantity": 1.5, "unit": "MG"}
	}
}`

func TestLookupSuccess(t *testing.T) {
	var gotIngr string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIngr = r.URL.Query().Get("ingr")
		assert.Equal(t, "test-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("app_key"))
		w.Write([]byte(nutritionPayload))
	}))
	defer server.Close()

	client := NewClient("test-id", "test-key", server.URL)
	record, err := client.Lookup(context.Background(), "protein shake", 100)

	require.NoError(t, err)
	assert.Equal(t, "100g protein shake", gotIngr)

	assert.Equal(t, float64(10), record.Protein)
	assert.Equal(t, float64(5), record.Fat)
	assert.Equal(t, float64(20), record.Carbs)
	assert.Equal(t, float64(3), record.Sugar)
	// Derived from macros, not the payload's calories field.
	assert.Equal(t, float64(165), record.Calories)
	assert.Equal(t, "Sodium: 300.0mg, Iron: 1.5mg", record.MicroNutrients)
	assert.Equal(t, "Edamam", record.Source)
}

func TestLookupScalesToGrams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nutritionPayload))
	}))
	defer server.Close()

	client := NewClient("test-id", "test-key", server.URL)
	record, err := client.Lookup(context.Background(), "protein shake", 200)

	require.NoError(t, err)
	assert.Equal(t, float64(20), record.Protein)
	assert.Equal(t, float64(40), record.Carbs)
	assert.Equal(t, float64(330), record.Calories)
	assert.Equal(t, "Sodium: 600.0mg, Iron: 3.0mg", record.MicroNutrients)
}

func TestLookupMissingCredentials(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	for _, creds := range [][2]string{{"", ""}, {"test-id", ""}, {"", "test-key"}} {
		client := NewClient(creds[0], creds[1], server.URL)
		record, err := client.Lookup(context.Background(), "protein shake", 100)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	}
	assert.Equal(t, 0, requests, "no network call without credentials")
}

func TestLookupUnrecognizedFood(t *testing.T) {
	// Edamam answers unknown ingredients with an all-zero nutrient map.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calories": 0, "totalNutrients": {}}`))
	}))
	defer server.Close()

	client := NewClient("test-id", "test-key", server.URL)
	record, err := client.Lookup(context.Background(), "zzzz", 100)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("test-id", "test-key", server.URL)
	record, err := client.Lookup(context.Background(), "protein shake", 100)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrNoData)
}
