package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"facture/pkg/models"
)

// imageExtensions are the file types the batch loop picks up, compared
// case-insensitively.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// batchJob pairs an image path with its position in the discovery order.
type batchJob struct {
	Path  string
	Index int
}

// batchOutcome is one document's result, success or failure.
type batchOutcome struct {
	File  string
	Entry models.ProcessedEntry
	Err   *DocumentError
}

// ProcessBatch processes every image in inputDir, writing per-document
// artifacts and a batch summary into outputDir. Documents are processed
// by a pool of workers; each document is independent, so the only shared
// state is the results slice, which workers write at distinct indexes.
//
// The returned summary is also persisted as batch_summary.json. An error
// is returned only for batch-level problems (unreadable input directory,
// no images, unwritable output); per-document failures land in the
// summary's failed set instead.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputDir, outputDir string, workers int) (*models.BatchSummary, error) {
	images, err := findImages(inputDir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images found in %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if workers <= 0 {
		workers = 1
	}

	p.log.Info().
		Str("input_dir", inputDir).
		Str("output_dir", outputDir).
		Int("images", len(images)).
		Int("workers", workers).
		Msg("Starting batch processing")

	outcomes := p.runWorkers(ctx, images, outputDir, workers)

	summary := &models.BatchSummary{
		Processed: []models.ProcessedEntry{},
		Failed:    []models.FailedEntry{},
		Total:     len(images),
		InputDir:  inputDir,
		OutputDir: outputDir,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			summary.Failed = append(summary.Failed, models.FailedEntry{
				File:       outcome.File,
				Reason:     outcome.Err.Reason,
				Brightness: outcome.Err.Brightness,
			})
			continue
		}
		summary.Processed = append(summary.Processed, outcome.Entry)
	}

	summaryPath := filepath.Join(outputDir, "batch_summary.json")
	if err := writeJSON(summaryPath, summary); err != nil {
		return nil, fmt.Errorf("failed to write batch summary: %w", err)
	}

	p.log.Info().
		Int("total", summary.Total).
		Int("processed", len(summary.Processed)).
		Int("failed", len(summary.Failed)).
		Str("summary", summaryPath).
		Msg("Batch processing completed")

	return summary, nil
}

// runWorkers fans documents out to a worker pool and collects outcomes
// in discovery order.
func (p *Pipeline) runWorkers(ctx context.Context, images []string, outputDir string, workers int) []batchOutcome {
	jobs := make(chan batchJob, len(images))
	outcomes := make([]batchOutcome, len(images))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobs {
				p.log.Debug().
					Int("worker", workerID).
					Str("file", filepath.Base(job.Path)).
					Msg("Worker processing image")

				outcome := batchOutcome{File: filepath.Base(job.Path)}
				entry, err := p.ProcessDocument(ctx, job.Path, outputDir)
				if err != nil {
					var docErr *DocumentError
					if !errors.As(err, &docErr) {
						docErr = &DocumentError{Reason: err.Error()}
					}
					outcome.Err = docErr
				} else {
					outcome.Entry = entry
				}
				outcomes[job.Index] = outcome
			}
		}(w)
	}

	for i, path := range images {
		jobs <- batchJob{Path: path, Index: i}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// findImages lists the supported image files directly inside dir,
// deduplicated and sorted by name.
func findImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
