package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/foodgapp/backend/internal/domain"
	"github.com/foodgapp/backend/internal/usecase"
)

// Alert thresholds for a single resolved item.
const (
	highCalorieAlert = 800.0 // kcal
	highFatAlert     = 30.0  // grams
)

// maxBatchItems bounds one resolve request.
const maxBatchItems = 50

// maxImageBytes bounds one uploaded image (5 MB, Rekognition's byte limit).
const maxImageBytes = 5 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver    *usecase.Resolver
	recognizer  domain.FoodRecognizer
	datasetRows int
	providers   []string
}

// NewHandler creates a new HTTP handler. recognizer may be nil when image
// recognition is not configured.
func NewHandler(resolver *usecase.Resolver, recognizer domain.FoodRecognizer, datasetRows int, providers []string) *Handler {
	return &Handler{
		resolver:    resolver,
		recognizer:  recognizer,
		datasetRows: datasetRows,
		providers:   providers,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "foodgapp-backend",
		"version":      "1.0.0",
		"dataset_rows": h.datasetRows,
		"providers":    h.providers,
	})
}

// resolveRequest is the body of POST /api/v1/nutrition/resolve.
type resolveRequest struct {
	Items []domain.FoodQuery `json:"items"`
}

// Validate checks the request shape before any resolution work starts.
func (r resolveRequest) Validate() error {
	if err := validation.Validate(r.Items, validation.Required, validation.Length(1, maxBatchItems)); err != nil {
		return fmt.Errorf("items: %w", err)
	}
	for i, item := range r.Items {
		err := validation.ValidateStruct(&item,
			validation.Field(&item.FoodName, validation.Required, validation.Length(1, 200)),
			validation.Field(&item.Grams, validation.Min(0.0), validation.Max(10000.0)),
		)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// ResolveNutrition resolves a batch of (food name, grams) queries. The
// resolver never fails; validation problems are the only 4xx path.
func (h *Handler) ResolveNutrition(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := h.resolver.ResolveAll(c.Request.Context(), req.Items)

	var alerts []string
	for _, record := range records {
		if record.Calories > highCalorieAlert {
			alerts = append(alerts, fmt.Sprintf("High calories: %s (%.2f)", record.FoodID, record.Calories))
		}
		if record.Fat > highFatAlert {
			alerts = append(alerts, fmt.Sprintf("High fat: %s (%.2f)", record.FoodID, record.Fat))
		}
	}

	response := gin.H{"foods": records}
	if len(alerts) > 0 {
		response["realtime_alert"] = true
		response["alert_reason"] = alerts
	}

	c.JSON(http.StatusOK, response)
}

// RecognizeFood accepts a multipart image upload, asks the vision
// collaborator for a food name, and resolves it with the supplied grams
// (default 100).
func (h *Handler) RecognizeFood(c *gin.Context) {
	if h.recognizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image recognition not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	grams := 100.0
	if raw := c.PostForm("grams"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grams value"})
			return
		}
		grams = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image file"})
		return
	}

	foodName, err := h.recognizer.RecognizeFood(c.Request.Context(), image)
	if err != nil {
		// Recognition failures degrade to 422, never 500.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no food detected in image"})
		return
	}

	record := h.resolver.Resolve(c.Request.Context(), foodName, grams)
	c.JSON(http.StatusOK, gin.H{
		"foodName": foodName,
		"record":   record,
	})
}
