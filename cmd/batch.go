package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"facture/internal/config"
	"facture/internal/logger"
	"facture/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input-dir] [output-dir]",
	Short: "Process every invoice image in a directory",
	Long: `Process all PNG/JPEG images in a directory through the full
pipeline using a pool of parallel workers.

Each document produces its own decision and structured JSON records in
the output directory; the run is aggregated into batch_summary.json.
Failures are recorded per document and never abort the batch - the
command exits nonzero only if at least one document failed.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string

Optional environment variables:
  BATCH_WORKERS - Number of parallel workers (default: 4)
  BLOCK_Y_GAP   - Vertical gap threshold for block grouping (default: 40)`,
	Example: `  # Process a folder of scans
  facture batch ./scans ./out

  # Process with 8 workers
  facture batch ./scans ./out --workers 8`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "Number of parallel workers (default from BATCH_WORKERS)")
	batchCmd.Flags().Int("timeout", 0, "Batch timeout in seconds (default from OCR_TIMEOUT_SECONDS)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	inputDir := args[0]
	outputDir := args[1]
	workers, _ := cmd.Flags().GetInt("workers")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = cfg.BatchWorkers
	}
	if timeoutSecs <= 0 {
		timeoutSecs = cfg.OCRTimeoutSeconds
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return fmt.Errorf("input directory not found: %s", inputDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", inputDir)
	}

	log.Info().
		Str("input_dir", inputDir).
		Str("output_dir", outputDir).
		Int("workers", workers).
		Msg("Starting batch run")

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	engine, err := createEngine(ctx, log)
	if err != nil {
		return err
	}
	defer engine.Close()

	p := pipeline.New(engine, cfg.BlockYGap)
	summary, err := p.ProcessBatch(ctx, inputDir, outputDir, workers)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d/%d documents (summary: %s)\n",
		len(summary.Processed), summary.Total,
		filepath.Join(outputDir, "batch_summary.json"))

	if len(summary.Failed) > 0 {
		for _, f := range summary.Failed {
			fmt.Printf("  failed: %s (%s)\n", f.File, f.Reason)
		}
		return fmt.Errorf("%d of %d documents failed", len(summary.Failed), summary.Total)
	}
	return nil
}
