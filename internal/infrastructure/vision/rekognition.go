package vision

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/foodgapp/backend/internal/domain"
)

// genericLabels are Rekognition labels too vague to use as a food name.
var genericLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plate": true, "cutlery": true,
	"lunch": true, "dinner": true, "breakfast": true, "produce": true,
	"beverage": true, "drink": true, "food presentation": true,
}

// labelDetector is the slice of the Rekognition API the recognizer uses.
type labelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Recognizer turns an uploaded image into a food-name string using AWS
// Rekognition label detection.
type Recognizer struct {
	client labelDetector
}

// NewRecognizer creates a recognizer using the ambient AWS credential chain.
func NewRecognizer(ctx context.Context, region string) (*Recognizer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Recognizer{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeFood detects labels in the image and returns the most confident
// specific food label, lowercased for the resolver. Returns ErrNoRecognition
// when nothing food-like is detected.
func (r *Recognizer) RecognizeFood(ctx context.Context, image []byte) (string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(15),
		MinConfidence: aws.Float32(55),
	})
	if err != nil {
		return "", fmt.Errorf("detect labels: %w", err)
	}

	// Labels arrive sorted by confidence. Prefer the first specific label
	// that descends from Food; fall back to any specific label.
	var fallback string
	for _, label := range out.Labels {
		name := aws.ToString(label.Name)
		if name == "" || genericLabels[strings.ToLower(name)] {
			continue
		}
		if hasFoodParent(label) {
			log.Printf("[VISION] recognized %q (%.1f%%)", name, aws.ToFloat32(label.Confidence))
			return strings.ToLower(name), nil
		}
		if fallback == "" {
			fallback = strings.ToLower(name)
		}
	}

	if fallback != "" {
		log.Printf("[VISION] no food-parented label, using %q", fallback)
		return fallback, nil
	}
	return "", domain.ErrNoRecognition
}

func hasFoodParent(label types.Label) bool {
	for _, parent := range label.Parents {
		if strings.EqualFold(aws.ToString(parent.Name), "Food") {
			return true
		}
	}
	return false
}
