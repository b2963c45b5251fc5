package ocr_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/disintegration/imaging"

	"facture/internal/ocr"
)

// Example demonstrates basic usage of the OCR adapter.
func Example() {
	// Create context with timeout for the recognition call
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create engine - credentials handled internally from environment
	engine, err := ocr.NewGoogleVisionEngine(ctx)
	if err != nil {
		log.Fatalf("Failed to create OCR engine: %v", err)
	}
	defer engine.Close()

	// Load the scanned invoice
	img, err := imaging.Open("sample_invoice.png")
	if err != nil {
		log.Fatalf("Failed to open image: %v", err)
	}

	// The adapter degrades engine failures to an empty result
	result := ocr.NewAdapter(engine).Run(ctx, img)

	fmt.Printf("Recognized %d lines, average confidence %.2f%%\n",
		len(result.Lines), result.AvgConfidence*100)
	for _, line := range result.Lines {
		fmt.Printf("  %.2f  %s\n", line.Confidence, line.Text)
	}
}

// ExampleNewGoogleVisionEngine demonstrates credential error handling.
func ExampleNewGoogleVisionEngine() {
	ctx := context.Background()

	engine, err := ocr.NewGoogleVisionEngine(ctx)
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Fatalf("Please set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
		}
		log.Fatalf("Failed to create OCR engine: %v", err)
	}
	defer engine.Close()

	// In tests, inject a fake instead:
	// engine := &fakeEngine{} // implements ocr.Engine
	// adapter := ocr.NewAdapter(engine)
	_ = engine
}
