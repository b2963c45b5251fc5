package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"facture/internal/config"
	"facture/internal/logger"
	"facture/internal/ocr"
	"facture/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [image-file]",
	Short: "Process one scanned invoice image end-to-end",
	Long: `Process a single invoice image through the full pipeline:
quality gate, enhancement, OCR on both variants, arbitration, total
extraction and block structuring.

Two JSON artifacts are written into the output directory: the decision
record (<name>_decision.json) and the structured block hierarchy
(<name>_structured.json).

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Process a scan into ./out
  facture process invoice.png -o ./out

  # Process with a custom timeout and block gap
  facture process invoice.jpg -o ./out --timeout 600 --y-gap 50`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("output", "o", ".", "Output directory for JSON artifacts")
	processCmd.Flags().Int("timeout", 0, "Processing timeout in seconds (default from OCR_TIMEOUT_SECONDS)")
	processCmd.Flags().Int("y-gap", 0, "Vertical gap threshold for block grouping (default from BLOCK_Y_GAP)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	imagePath := args[0]
	outputDir, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	yGap, _ := cmd.Flags().GetInt("y-gap")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if timeoutSecs <= 0 {
		timeoutSecs = cfg.OCRTimeoutSeconds
	}
	if yGap <= 0 {
		yGap = cfg.BlockYGap
	}

	if _, err := os.Stat(imagePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", imagePath)
		}
		return fmt.Errorf("error accessing image file: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Info().
		Str("file", imagePath).
		Str("output", outputDir).
		Int("timeout", timeoutSecs).
		Msg("Starting document processing")

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	engine, err := createEngine(ctx, log)
	if err != nil {
		return err
	}
	defer engine.Close()

	p := pipeline.New(engine, yGap)
	entry, err := p.ProcessDocument(ctx, imagePath, outputDir)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	total := "none"
	if entry.Total != nil {
		total = *entry.Total
	}
	fmt.Printf("Processed %s: %d lines, confidence %.3f, total %s\n",
		entry.File, entry.Lines, entry.Confidence, total)
	return nil
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// createEngine creates the Google Vision OCR engine, with guidance when
// credentials are missing.
func createEngine(ctx context.Context, log zerolog.Logger) (*ocr.GoogleVisionEngine, error) {
	hasCredentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" || os.Getenv("GOOGLE_CREDENTIALS") != ""
	if !hasCredentials {
		log.Warn().Msg("No explicit Google Cloud credentials configured, trying application default credentials")
	}

	engine, err := ocr.NewGoogleVisionEngine(ctx)
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Error().Err(err).Msg("Google Cloud credentials validation failed")
			return nil, fmt.Errorf("Google Cloud credentials not configured. Please set one of:\n\n"+
				"1. GOOGLE_APPLICATION_CREDENTIALS with the path to a service account JSON file\n"+
				"2. GOOGLE_CREDENTIALS with inline JSON credentials\n"+
				"3. Application default credentials via 'gcloud auth application-default login'\n\n"+
				"Original error: %w", err)
		}
		log.Error().Err(err).Msg("Failed to create OCR engine")
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	log.Debug().Msg("OCR engine created successfully")
	return engine, nil
}
